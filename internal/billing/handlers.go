package billing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/invoice"
	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/pricing"
)

// Handler exposes invoice and bill endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type computeRequest struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent" validate:"gte=0,lte=100"`
	TaxPercent      float64 `json:"taxPercent" validate:"gte=0,lte=100"`
}

// WordsResponse pairs an amount with its spelled-out form.
type WordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
}

// Compute handles POST /api/v1/invoices/compute for a caller-supplied subtotal.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, Compute(req.Subtotal, req.DiscountPercent, req.TaxPercent, "compute"))
}

// Quote handles POST /api/v1/bills/quote for the lab's stored tests.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "billing service not configured", nil)
		return
	}
	var req QuoteRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	quote, err := h.service.Quote(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, quote)
}

// AmountInWords handles GET /api/v1/amount-in-words?amount=.
func (h *Handler) AmountInWords(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("amount"))
	amount, ok := lab.ParseStrictDecimal(raw)
	if !ok {
		appErr := common.BadRequest("amount must be a decimal number", nil)
		appErr.Details = map[string]string{"amount": raw}
		common.WriteError(w, appErr)
		return
	}
	words := invoice.AmountInWords(amount)
	observeWords(words)
	common.JSONData(w, http.StatusOK, WordsResponse{Amount: pricing.FormatAmount(amount), Words: words})
}

// Routes mounts the billing endpoints; requireLab guards the quote route.
func (h *Handler) Routes(r chi.Router, requireLab func(http.Handler) http.Handler) {
	r.Post("/invoices/compute", h.Compute)
	r.Get("/amount-in-words", h.AmountInWords)
	r.With(requireLab).Post("/bills/quote", h.Quote)
}
