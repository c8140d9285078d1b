package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noah-isme/backend-lab/internal/tenant"
)

func TestResolverMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		defaultLab string
		want       string
		wantOK     bool
	}{
		{"header wins", "42", "1", "42", true},
		{"default fallback", "", "1", "1", true},
		{"blank header without default", "  ", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := tenant.NewResolver("", tt.defaultLab)
			var got string
			var ok bool
			handler := resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = tenant.From(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tenant.DefaultHeader, tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("expected (%q,%v), got (%q,%v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestCustomHeader(t *testing.T) {
	resolver := tenant.NewResolver("X-Tenant", "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant", "9")
	if got := resolver.Resolve(req); got != "9" {
		t.Fatalf("expected 9, got %q", got)
	}
}

func TestPrefixKey(t *testing.T) {
	if got := tenant.PrefixKey("", "parameter:1"); got != "parameter:1" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := tenant.PrefixKey("7", "parameter:1"); got != "lab:7:parameter:1" {
		t.Fatalf("unexpected key %q", got)
	}
	if _, ok := tenant.FromContext(context.Background()); ok {
		t.Fatal("expected no lab on empty context")
	}
}
