package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/obs"
	"github.com/noah-isme/backend-lab/internal/pricing"
	"github.com/noah-isme/backend-lab/internal/reference"
)

// Handler exposes reference range and pricing endpoints.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

type demographicsRequest struct {
	Age    *int    `json:"age" validate:"omitempty,gte=0"`
	Gender *string `json:"gender"`
}

func (d demographicsRequest) demographics() reference.Demographics {
	return reference.Demographics{Age: d.Age, Gender: d.Gender}
}

type resolveRequest struct {
	demographicsRequest
	Ranges []reference.Range `json:"ranges"`
}

// RangeResponse reports the selected range, its position and the matching rule.
type RangeResponse struct {
	ParameterID *int64           `json:"parameterId,omitempty"`
	Range       *reference.Range `json:"range"`
	Index       int              `json:"index"`
	Rule        reference.Rule   `json:"rule"`
}

type aggregateItem struct {
	Price reference.Bound `json:"price"`
}

type aggregateRequest struct {
	Parameters []aggregateItem `json:"parameters"`
}

type priceSuggestionRequest struct {
	ParameterIDs []int64 `json:"parameterIds" validate:"required,min=1,dive,gt=0"`
}

// PriceResponse carries a two-decimal price string.
type PriceResponse struct {
	Price string `json:"price"`
}

// ResolveInline handles POST /api/v1/reference-ranges/resolve over ranges supplied in the body.
func (h *Handler) ResolveInline(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	sel := reference.Select(req.Ranges, req.demographics())
	obs.ObserveRangeResolution(string(sel.Rule))
	common.JSONData(w, http.StatusOK, RangeResponse{Range: sel.Range, Index: sel.Index, Rule: sel.Rule})
}

// ResolveForParameter handles POST /api/v1/parameters/{id}/reference-range.
func (h *Handler) ResolveForParameter(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteError(w, common.BadRequest("parameter id must be a positive integer", err))
		return
	}
	var req demographicsRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	sel, err := h.service.ResolveRange(r.Context(), id, req.demographics())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, RangeResponse{ParameterID: &id, Range: sel.Range, Index: sel.Index, Rule: sel.Rule})
}

// Aggregate handles POST /api/v1/pricing/aggregate over prices supplied in the body.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	params := make([]lab.Parameter, 0, len(req.Parameters))
	for _, item := range req.Parameters {
		var p lab.Parameter
		if item.Price != "" {
			price := string(item.Price)
			p.Price = &price
		}
		params = append(params, p)
	}
	common.JSONData(w, http.StatusOK, PriceResponse{Price: pricing.Aggregate(params)})
}

// SuggestPrice handles POST /api/v1/tests/price-suggestion for the lab's stored parameters.
func (h *Handler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	var req priceSuggestionRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	price, err := h.service.SuggestPrice(r.Context(), req.ParameterIDs)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, PriceResponse{Price: price})
}

// Routes mounts the stateless and lab-scoped catalog endpoints. requireLab guards the latter.
func (h *Handler) Routes(r chi.Router, requireLab func(http.Handler) http.Handler) {
	r.Post("/reference-ranges/resolve", h.ResolveInline)
	r.Post("/pricing/aggregate", h.Aggregate)
	r.Group(func(r chi.Router) {
		r.Use(requireLab)
		r.Post("/parameters/{id}/reference-range", h.ResolveForParameter)
		r.Post("/tests/price-suggestion", h.SuggestPrice)
	})
}
