// Package market fetches quote snapshots from the Yahoo Finance chart API
// and archives them in PostgreSQL.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"stocktracker/pkg/config"
)

// Yahoo rejects requests without a browser-like user agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) stocktracker/1.0"

// ErrNoData is returned when the provider has no result for a symbol.
var ErrNoData = errors.New("no data for symbol")

// chartResponse represents the /v8/finance/chart response structure
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *chartError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

type chartResult struct {
	Meta       chartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartMeta struct {
	Symbol               string   `json:"symbol"`
	Currency             string   `json:"currency"`
	LongName             string   `json:"longName"`
	ShortName            string   `json:"shortName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
	RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
	GMTOffset            int      `json:"gmtoffset"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
}

// Fetcher handles snapshot fetching from the chart API
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	rangeParam string
	interval   string
}

// NewFetcher creates a new snapshot fetcher
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:    cfg.QuoteBaseURL,
		rangeParam: cfg.HistoryRange,
		interval:   cfg.HistoryInterval,
	}
}

// FetchSnapshot fetches company metadata, the current quote and the
// trailing daily closes for ticker in a single request. The ticker is
// passed through unvalidated.
func (f *Fetcher) FetchSnapshot(ctx context.Context, ticker string) (*Snapshot, error) {
	endpoint := fmt.Sprintf(
		"%s/v8/finance/chart/%s?range=%s&interval=%s",
		f.baseURL, url.PathEscape(ticker), url.QueryEscape(f.rangeParam), url.QueryEscape(f.interval),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	log.Printf("Fetching snapshot for %q...", ticker)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chart chartResponse
	decodeErr := json.Unmarshal(body, &chart)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && chart.Chart.Error != nil {
			return nil, fmt.Errorf("unexpected status %d for %q: %w", resp.StatusCode, ticker, chart.Chart.Error)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("unmarshal chart: %w", decodeErr)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("provider error for %q: %w", ticker, chart.Chart.Error)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%q: %w", ticker, ErrNoData)
	}

	snap := parseChart(ticker, &chart.Chart.Result[0], time.Now())
	log.Printf("Fetched %s: %d closes, price=%v", snap.Symbol, len(snap.Closes), snap.Price.Decimal)
	return snap, nil
}

// parseChart converts one chart result to a Snapshot
func parseChart(ticker string, res *chartResult, fetchedAt time.Time) *Snapshot {
	meta := res.Meta

	snap := &Snapshot{
		Symbol:      meta.Symbol,
		CompanyName: meta.LongName,
		Currency:    meta.Currency,
		Price:       nullDecimal(meta.RegularMarketPrice),
		DayLow:      nullDecimal(meta.RegularMarketDayLow),
		DayHigh:     nullDecimal(meta.RegularMarketDayHigh),
		FetchedAt:   fetchedAt,
	}
	if snap.Symbol == "" {
		snap.Symbol = ticker
	}
	if snap.CompanyName == "" {
		snap.CompanyName = meta.ShortName
	}
	if snap.Currency == "" {
		snap.Currency = DefaultCurrency
	}

	if len(res.Indicators.Quote) == 0 {
		return snap
	}

	loc := time.FixedZone(meta.ExchangeTimezoneName, meta.GMTOffset)
	closes := res.Indicators.Quote[0].Close
	for i, ts := range res.Timestamp {
		// Yahoo pads arrays with nulls for days without trades
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		snap.Closes = append(snap.Closes, PricePoint{
			Date:  time.Unix(ts, 0).In(loc),
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}

	return snap
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}
