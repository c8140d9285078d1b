package invoice

import (
	"math"
	"testing"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{10, "Ten"},
		{13, "Thirteen"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1001, "One Thousand One"},
		{12345, "Twelve Thousand Three Hundred Forty Five"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{100001, "One Lakh One"},
		{250500, "Two Lakh Fifty Thousand Five Hundred"},
		{9999999, "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{10000000, TooLarge},
		{math.MaxInt64, TooLarge},
		{-45, "Negative Forty Five"},
		{math.MinInt64, "Negative " + TooLarge},
	}
	for _, tt := range tests {
		if got := ToWords(tt.n); got != tt.want {
			t.Errorf("ToWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{945.99, "Nine Hundred Forty Five"},
		{0.5, "Zero"},
		{1e12, TooLarge},
		{math.Inf(1), TooLarge},
		{math.NaN(), TooLarge},
		{math.Inf(-1), TooLarge},
		{-1e12, "Negative " + TooLarge},
		{-0.5, "Negative One"},
	}
	for _, tt := range tests {
		if got := AmountInWords(tt.amount); got != tt.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
