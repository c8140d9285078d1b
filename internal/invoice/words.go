package invoice

import "math"

// TooLarge is returned for amounts at or above one crore.
const TooLarge = "Number too large"

const (
	wordsCeiling   = 10_000_000
	negativePrefix = "Negative "
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// ToWords spells n using the Indian numbering system (thousand, lakh).
// Values of one crore and above return TooLarge.
func ToWords(n int64) string {
	switch {
	case n == 0:
		return "Zero"
	case n < 0:
		if n <= -wordsCeiling {
			return negativePrefix + TooLarge
		}
		return negativePrefix + ToWords(-n)
	case n >= wordsCeiling:
		return TooLarge
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		return withRest(tens[n/10], n%10)
	case n < 1000:
		return withRest(ones[n/100]+" Hundred", n%100)
	case n < 100_000:
		return withRest(ToWords(n/1000)+" Thousand", n%1000)
	default:
		return withRest(ToWords(n/100_000)+" Lakh", n%100_000)
	}
}

// AmountInWords drops the fractional part of amount and spells the rest.
func AmountInWords(amount float64) string {
	f := math.Floor(amount)
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f >= wordsCeiling:
		return TooLarge
	case f <= -wordsCeiling:
		return negativePrefix + TooLarge
	}
	return ToWords(int64(f))
}

func withRest(head string, rest int64) string {
	if rest == 0 {
		return head
	}
	return head + " " + ToWords(rest)
}
