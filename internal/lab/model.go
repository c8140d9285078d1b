package lab

import (
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/backend-lab/internal/reference"
)

// Parameter is a measurable analyte owned by the test administration tooling.
type Parameter struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Unit            *string           `json:"unit,omitempty"`
	Price           *string           `json:"price,omitempty"`
	ReferenceRanges []reference.Range `json:"referenceRanges"`
}

// Test is an orderable bundle of parameters with an operator-confirmed price.
type Test struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ParameterIDs []int64 `json:"parameterIds"`
	Price        string  `json:"price"`
}

// UnitOrEmpty returns the parameter unit or an empty string.
func (p Parameter) UnitOrEmpty() string {
	if p.Unit == nil {
		return ""
	}
	return *p.Unit
}

// ParseDecimal reads the leading decimal number of value, ignoring surrounding whitespace and
// any trailing text, so "120 mg/dL" yields 120. It reports false when no number leads the
// input or the number is not finite.
func ParseDecimal(value string) (float64, bool) {
	prefix := decimalPrefix(strings.TrimSpace(value))
	if prefix == "" {
		return 0, false
	}
	return parseFinite(prefix)
}

// ParseStrictDecimal accepts only a complete decimal number after trimming whitespace.
func ParseStrictDecimal(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || decimalPrefix(trimmed) != trimmed {
		return 0, false
	}
	return parseFinite(trimmed)
}

func parseFinite(s string) (float64, bool) {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// decimalPrefix returns the longest leading [sign] digits [. digits] [e [sign] digits] run.
// It returns "" unless at least one mantissa digit is present.
func decimalPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
