package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-lab/internal/catalog"
	"github.com/noah-isme/backend-lab/internal/http/middleware"
	"github.com/noah-isme/backend-lab/internal/tenant"
)

type rangeEnvelope struct {
	Data catalog.RangeResponse `json:"data"`
}

type priceEnvelope struct {
	Data catalog.PriceResponse `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	handler := catalog.NewHandler(catalog.HandlerConfig{Service: newService(t, newFakeParameters(), nil)})
	r := chi.NewRouter()
	r.Use(tenant.NewResolver("", "").Middleware)
	handler.Routes(r, middleware.RequireLab)
	return r
}

func post(t *testing.T, h http.Handler, path, body, labID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if labID != "" {
		req.Header.Set(tenant.DefaultHeader, labID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResolveInlineHandler(t *testing.T) {
	router := newRouter(t)

	body := `{"age":8,"gender":"Female","ranges":[
		{"ageGroup":"senior","gender":"Male","minValue":"1","maxValue":"2"},
		{"ageGroup":"adult","gender":"Any","minValue":70,"maxValue":100}
	]}`
	rec := post(t, router, "/reference-ranges/resolve", body, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rangeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Index)
	require.Equal(t, "adult_default", string(resp.Data.Rule))
	require.NotNil(t, resp.Data.Range)
	require.Equal(t, "70", string(resp.Data.Range.MinValue))
	require.Nil(t, resp.Data.ParameterID)
}

func TestResolveInlineEmptyRanges(t *testing.T) {
	rec := post(t, newRouter(t), "/reference-ranges/resolve", `{"ranges":[]}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"range":null`)
	require.Contains(t, rec.Body.String(), `"index":-1`)
}

func TestResolveInlineRejectsNegativeAge(t *testing.T) {
	rec := post(t, newRouter(t), "/reference-ranges/resolve", `{"age":-1,"ranges":[]}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	require.Equal(t, "gte", resp.Error.Details["age"])
}

func TestResolveForParameterHandler(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/parameters/1/reference-range", `{"age":40,"gender":"Male"}`, "7")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp rangeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), *resp.Data.ParameterID)
	require.Equal(t, 0, resp.Data.Index)
	require.Equal(t, "13.5", string(resp.Data.Range.MinValue))

	missing := post(t, router, "/parameters/42/reference-range", `{}`, "7")
	require.Equal(t, http.StatusNotFound, missing.Code)

	badID := post(t, router, "/parameters/abc/reference-range", `{}`, "7")
	require.Equal(t, http.StatusBadRequest, badID.Code)
}

func TestLabScopedRoutesRequireLab(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/tests/price-suggestion", `{"parameterIds":[1]}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "LAB_REQUIRED", resp.Error.Code)
}

func TestAggregateHandler(t *testing.T) {
	rec := post(t, newRouter(t), "/pricing/aggregate", `{"parameters":[{"price":"100.50"},{"price":null},{"price":"abc"},{"price":49.5}]}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp priceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "150.00", resp.Data.Price)

	empty := post(t, newRouter(t), "/pricing/aggregate", `{"parameters":[]}`, "")
	require.Contains(t, empty.Body.String(), `"price":"0.00"`)
}

func TestSuggestPriceHandler(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/tests/price-suggestion", `{"parameterIds":[1,2]}`, "7")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp priceEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "249.50", resp.Data.Price)

	invalid := post(t, router, "/tests/price-suggestion", `{"parameterIds":[]}`, "7")
	require.Equal(t, http.StatusBadRequest, invalid.Code)
}
