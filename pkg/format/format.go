// Package format renders prices and dates the way the tracker displays them:
// "." groups thousands, "," separates decimals, dates read DD-MM-YYYY.
package format

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of any missing value.
const NotAvailable = "N/A"

const dateLayout = "02-01-2006"

// Price formats an optional price with two decimal places.
func Price(p decimal.NullDecimal) string {
	if !p.Valid {
		return NotAvailable
	}
	return Decimal(p.Decimal)
}

// Float formats a plain float, used for chart ticks and tooltips.
func Float(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotAvailable
	}
	return Decimal(decimal.NewFromFloat(f))
}

// Decimal formats d rounded to two places, e.g. 1234.5 -> "1.234,50".
func Decimal(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	if strings.Trim(whole, "0") == "" && strings.Trim(frac, "0") == "" {
		// -0.001 rounds to "-0.00"; drop the sign
		sign = ""
	}

	return sign + groupThousands(whole) + "," + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date formats t as zero-padded DD-MM-YYYY.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}
