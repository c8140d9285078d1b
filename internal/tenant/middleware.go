package tenant

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const labContextKey contextKey = "tenant.lab_id"

// DefaultHeader carries the lab identifier when no header name is configured.
const DefaultHeader = "X-Lab-ID"

// Resolver resolves the lab identifier from HTTP requests.
type Resolver struct {
	HeaderName string
	DefaultLab string
}

// NewResolver returns a resolver reading headerName, falling back to defaultLab.
func NewResolver(headerName, defaultLab string) *Resolver {
	if strings.TrimSpace(headerName) == "" {
		headerName = DefaultHeader
	}
	return &Resolver{
		HeaderName: headerName,
		DefaultLab: strings.TrimSpace(defaultLab),
	}
}

// Middleware resolves the lab from the request and injects it into the context passed downstream.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		labID := r.Resolve(req)
		if labID == "" {
			labID = r.DefaultLab
		}
		if labID != "" {
			req = req.WithContext(WithLab(req.Context(), labID))
		}
		next.ServeHTTP(w, req)
	})
}

// Resolve reads the lab identifier from the configured header.
func (r *Resolver) Resolve(req *http.Request) string {
	if r == nil || req == nil {
		return ""
	}
	return strings.TrimSpace(req.Header.Get(r.HeaderName))
}

// WithLab stores the lab identifier inside the context.
func WithLab(ctx context.Context, labID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, labContextKey, labID)
}

// FromContext extracts the lab identifier from the context if available.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	labID, ok := ctx.Value(labContextKey).(string)
	if !ok {
		return "", false
	}
	labID = strings.TrimSpace(labID)
	if labID == "" {
		return "", false
	}
	return labID, true
}
