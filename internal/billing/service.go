package billing

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/invoice"
	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/obs"
	"github.com/noah-isme/backend-lab/internal/pricing"
	"github.com/noah-isme/backend-lab/internal/repo"
)

// ErrTestNotFound is returned when an ordered test does not exist in the lab.
var ErrTestNotFound = errors.New("test not found")

type testSource interface {
	ByIDs(ctx context.Context, ids []int64) ([]repo.TestRow, error)
}

// QuoteRequest lists the ordered tests and the operator-entered percentages.
type QuoteRequest struct {
	TestIDs         []int64 `json:"testIds" validate:"required,min=1,dive,gt=0"`
	DiscountPercent float64 `json:"discountPercent" validate:"gte=0,lte=100"`
	TaxPercent      float64 `json:"taxPercent" validate:"gte=0,lte=100"`
}

// Quote is a bill computed from the authoritative test prices.
type Quote struct {
	Tests []lab.Test   `json:"tests"`
	Bill  invoice.Bill `json:"bill"`
}

// Service prices test orders.
type Service struct {
	tests  testSource
	logger zerolog.Logger
}

// NewService constructs a Service.
func NewService(tests testSource, logger zerolog.Logger) (*Service, error) {
	if tests == nil {
		return nil, errors.New("billing: test source is required")
	}
	return &Service{tests: tests, logger: logger}, nil
}

// Quote loads the ordered tests and freezes them into an unpaid bill. A test ordered twice is billed twice.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	rows, err := s.tests.ByIDs(ctx, uniqueIDs(req.TestIDs))
	if err != nil {
		return Quote{}, repo.HTTPError("load tests", err)
	}
	byID := make(map[int64]lab.Test, len(rows))
	for _, row := range rows {
		t := lab.Test{ID: row.ID, Name: row.Name, ParameterIDs: row.ParameterIDs}
		if row.Price != nil {
			t.Price = *row.Price
		}
		if t.ParameterIDs == nil {
			t.ParameterIDs = []int64{}
		}
		byID[row.ID] = t
	}

	tests := make([]lab.Test, 0, len(req.TestIDs))
	var unknown []int64
	for _, id := range req.TestIDs {
		t, ok := byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		tests = append(tests, t)
	}
	if len(unknown) > 0 {
		appErr := common.NewAppError("NOT_FOUND", "test not found", http.StatusNotFound, ErrTestNotFound)
		appErr.Details = map[string]any{"testIds": unknown}
		return Quote{}, appErr
	}

	bill := Compute(pricing.Subtotal(tests), req.DiscountPercent, req.TaxPercent, "quote")
	s.logger.Debug().
		Int("tests", len(tests)).
		Str("final_amount", bill.FinalAmount).
		Msg("bill quoted")
	return Quote{Tests: tests, Bill: bill}, nil
}

// Compute builds a bill and records it under source in the invoice metrics.
func Compute(subtotal, discountPercent, taxPercent float64, source string) invoice.Bill {
	bill := invoice.NewBill(subtotal, discountPercent, taxPercent)
	obs.ObserveInvoice(source)
	observeWords(bill.AmountInWords)
	return bill
}

func observeWords(words string) {
	if strings.HasSuffix(words, invoice.TooLarge) {
		obs.ObserveWordsOverflow()
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
