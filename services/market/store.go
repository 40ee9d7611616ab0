package market

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Store handles snapshot archive persistence
type Store struct {
	db *sql.DB
}

// NewStore creates a new snapshot store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// TickerSummary describes what the archive holds for one ticker.
type TickerSummary struct {
	Ticker    string
	Company   string
	Closes    int
	LatestDay time.Time
}

// tradeDate strips the clock so a close lands on its exchange-local day.
func tradeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SaveSnapshot upserts every close of snap, keyed by ticker and trading day.
// It returns the number of rows written.
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) (int, error) {
	if len(snap.Closes) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quote_history (ticker, trade_date, close, currency, company_name, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (ticker, trade_date) DO UPDATE
		SET close = EXCLUDED.close,
		    currency = EXCLUDED.currency,
		    company_name = EXCLUDED.company_name
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range snap.Closes {
		if _, err := stmt.ExecContext(ctx, snap.Symbol, tradeDate(p.Date), p.Close, snap.Currency, snap.CompanyName); err != nil {
			log.Printf("Error saving close for %s on %s: %v", snap.Symbol, p.Date.Format("2006-01-02"), err)
			return 0, fmt.Errorf("save close: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	log.Printf("Archived %d closes for %s", len(snap.Closes), snap.Symbol)
	return len(snap.Closes), nil
}

// GetHistorical retrieves archived closes for a ticker over the last days
func (s *Store) GetHistorical(ctx context.Context, ticker string, days int) ([]PricePoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_date, close
		FROM quote_history
		WHERE ticker = $1 AND trade_date >= CURRENT_DATE - $2::int
		ORDER BY trade_date ASC
	`, ticker, days)
	if err != nil {
		return nil, fmt.Errorf("query historical data: %w", err)
	}
	defer rows.Close()

	var results []PricePoint
	for rows.Next() {
		var p PricePoint
		var closeVal decimal.Decimal
		if err := rows.Scan(&p.Date, &closeVal); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		p.Close = closeVal
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return results, nil
}

// Summary lists every archived ticker with its close count and latest day
func (s *Store) Summary(ctx context.Context) ([]TickerSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, MAX(company_name), COUNT(*), MAX(trade_date)
		FROM quote_history
		GROUP BY ticker
		ORDER BY ticker
	`)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var out []TickerSummary
	for rows.Next() {
		var ts TickerSummary
		var company sql.NullString
		if err := rows.Scan(&ts.Ticker, &company, &ts.Closes, &ts.LatestDay); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		ts.Company = company.String
		out = append(out, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}
