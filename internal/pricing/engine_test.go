package pricing

import (
	"testing"

	"github.com/noah-isme/backend-lab/internal/lab"
)

func price(v string) *string { return &v }

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		params []lab.Parameter
		want   string
	}{
		{"empty", nil, "0.00"},
		{"mixed prices", []lab.Parameter{{Price: price("10.50")}, {Price: price("5")}, {}}, "15.50"},
		{"unparseable contributes zero", []lab.Parameter{{Price: price("abc")}, {Price: price("2.25")}}, "2.25"},
		{"blank contributes zero", []lab.Parameter{{Price: price("")}, {Price: price(" 1 ")}}, "1.00"},
		{"trailing currency text", []lab.Parameter{{Price: price("10.50 INR")}}, "10.50"},
		{"rounds to cents", []lab.Parameter{{Price: price("0.333")}, {Price: price("0.333")}}, "0.67"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.params); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	tests := []lab.Test{{Price: "450"}, {Price: "550.50"}, {Price: ""}}
	if got := Subtotal(tests); got != 1000.5 {
		t.Fatalf("expected 1000.5, got %v", got)
	}
}

func TestFormatAmountNegative(t *testing.T) {
	if got := FormatAmount(-12.5); got != "-12.50" {
		t.Fatalf("unexpected format %s", got)
	}
}

func TestAggregateIsRepeatable(t *testing.T) {
	params := []lab.Parameter{{Price: price("10.50 INR")}, {Price: price("abc")}, {Price: price("0.333")}}
	first := Aggregate(params)
	if second := Aggregate(params); first != second {
		t.Fatalf("expected identical output, got %s and %s", first, second)
	}
	if *params[0].Price != "10.50 INR" {
		t.Fatalf("input mutated")
	}
}
