package invoice

import "github.com/noah-isme/backend-lab/internal/pricing"

// Summary holds the computed invoice components.
type Summary struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	FinalAmount    float64
}

// Bill is the immutable billing snapshot persisted at creation time.
type Bill struct {
	Subtotal        string  `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent"`
	TaxPercent      float64 `json:"taxPercent"`
	DiscountAmount  string  `json:"discountAmount"`
	TaxAmount       string  `json:"taxAmount"`
	FinalAmount     string  `json:"finalAmount"`
	AmountInWords   string  `json:"amountInWords"`
	IsPaid          bool    `json:"isPaid"`
}

// Compute applies the discount, then taxes the discounted amount.
// Percentages are not clamped; validation belongs to the caller.
func Compute(subtotal, discountPercent, taxPercent float64) Summary {
	discount := subtotal * discountPercent / 100
	tax := (subtotal - discount) * taxPercent / 100
	return Summary{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		FinalAmount:    subtotal - discount + tax,
	}
}

// NewBill computes the invoice and freezes it into an unpaid Bill.
func NewBill(subtotal, discountPercent, taxPercent float64) Bill {
	s := Compute(subtotal, discountPercent, taxPercent)
	return Bill{
		Subtotal:        pricing.FormatAmount(s.Subtotal),
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
		DiscountAmount:  pricing.FormatAmount(s.DiscountAmount),
		TaxAmount:       pricing.FormatAmount(s.TaxAmount),
		FinalAmount:     pricing.FormatAmount(s.FinalAmount),
		AmountInWords:   AmountInWords(s.FinalAmount),
	}
}
