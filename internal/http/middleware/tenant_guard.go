package middleware

import (
	"net/http"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/tenant"
)

// RequireLab rejects requests that carry no lab identifier.
func RequireLab(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := tenant.From(r.Context()); !ok {
			common.JSONError(w, http.StatusBadRequest, "LAB_REQUIRED", "lab is required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
