package pricing

import (
	"strconv"

	"github.com/noah-isme/backend-lab/internal/lab"
)

// Aggregate sums parameter prices into a suggested bundle price with two fractional digits.
// Missing or unparseable prices contribute zero.
func Aggregate(params []lab.Parameter) string {
	var total float64
	for _, p := range params {
		if p.Price == nil {
			continue
		}
		total += ParseAmount(*p.Price)
	}
	return FormatAmount(total)
}

// Subtotal sums the persisted bundle prices of the ordered tests.
func Subtotal(tests []lab.Test) float64 {
	var total float64
	for _, t := range tests {
		total += ParseAmount(t.Price)
	}
	return total
}

// ParseAmount parses a decimal amount, returning zero when it cannot be parsed.
func ParseAmount(value string) float64 {
	v, ok := lab.ParseDecimal(value)
	if !ok {
		return 0
	}
	return v
}

// FormatAmount renders an amount with exactly two fractional digits.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
