package reporting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/obs"
	"github.com/noah-isme/backend-lab/internal/reference"
	"github.com/noah-isme/backend-lab/internal/result"
)

// Handler exposes result classification endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type classifyRequest struct {
	Value string           `json:"value"`
	Range *reference.Range `json:"range"`
}

// ClassifyResponse is the verdict plus the printable range text.
type ClassifyResponse struct {
	result.Classification
	ReferenceRange string `json:"referenceRange"`
}

// Classify handles POST /api/v1/results/classify against an inline range.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	c := result.Classify(req.Value, req.Range)
	obs.ObserveClassification(string(c.Status))
	common.JSONData(w, http.StatusOK, ClassifyResponse{Classification: c, ReferenceRange: result.FormatRange(req.Range)})
}

// Snapshot handles POST /api/v1/results/snapshot for the lab's stored parameters.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reporting service not configured", nil)
		return
	}
	var req SnapshotRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	snap, err := h.service.Snapshot(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, snap)
}

// Routes mounts the reporting endpoints; requireLab guards the snapshot route.
func (h *Handler) Routes(r chi.Router, requireLab func(http.Handler) http.Handler) {
	r.Post("/results/classify", h.Classify)
	r.With(requireLab).Post("/results/snapshot", h.Snapshot)
}
