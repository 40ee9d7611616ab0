package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stocktracker/pkg/format"
)

// DefaultCurrency is assumed when the provider omits one.
const DefaultCurrency = "IDR"

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// Snapshot is everything fetched for one ticker at one point in time.
type Snapshot struct {
	Symbol      string
	CompanyName string
	Price       decimal.NullDecimal
	Currency    string
	DayLow      decimal.NullDecimal
	DayHigh     decimal.NullDecimal
	Closes      []PricePoint
	FetchedAt   time.Time
}

// InfoLines renders the three summary lines shown above the chart, in order:
// company, current price with currency, day's range.
func (s *Snapshot) InfoLines() []string {
	name := s.CompanyName
	if name == "" {
		name = format.NotAvailable
	}
	currency := s.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return []string{
		fmt.Sprintf("Company: %s", name),
		fmt.Sprintf("Current Price: %s %s", format.Price(s.Price), currency),
		fmt.Sprintf("Day's Range: %s - %s", format.Price(s.DayLow), format.Price(s.DayHigh)),
	}
}
