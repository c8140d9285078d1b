package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-lab/internal/catalog"
	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/reference"
	"github.com/noah-isme/backend-lab/internal/repo"
	"github.com/noah-isme/backend-lab/internal/tenant"
)

type fakeParameters struct {
	rows  map[int64]repo.ParameterRow
	calls [][]int64
	err   error
}

func (f *fakeParameters) ByIDs(_ context.Context, ids []int64) ([]repo.ParameterRow, error) {
	f.calls = append(f.calls, append([]int64(nil), ids...))
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repo.ParameterRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func newFakeParameters() *fakeParameters {
	return &fakeParameters{rows: map[int64]repo.ParameterRow{
		1: {
			ID:    1,
			Name:  "Hemoglobin",
			Unit:  strPtr("g/dL"),
			Price: strPtr("150.00"),
			ReferenceRanges: []byte(`[
				{"ageGroup":"adult","gender":"Male","minValue":"13.5","maxValue":"17.5"},
				{"ageGroup":"adult","gender":"Any","minValue":"12","maxValue":"16"}
			]`),
		},
		2: {ID: 2, Name: "Glucose", Price: strPtr("99.50"), ReferenceRanges: []byte(`null`)},
		3: {ID: 3, Name: "Notes", Price: nil},
	}}
}

func labContext() context.Context {
	return tenant.WithLab(context.Background(), "7")
}

func newService(t *testing.T, source *fakeParameters, c *catalog.Cache) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.ServiceConfig{Parameters: source, Cache: c, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return svc
}

func TestParametersKeepsRequestOrder(t *testing.T) {
	svc := newService(t, newFakeParameters(), nil)

	params, err := svc.Parameters(labContext(), []int64{3, 1, 3})
	require.NoError(t, err)
	require.Len(t, params, 3)
	require.Equal(t, int64(3), params[0].ID)
	require.Equal(t, int64(1), params[1].ID)
	require.Equal(t, int64(3), params[2].ID)
	require.Len(t, params[1].ReferenceRanges, 2)
	require.Equal(t, reference.Bound("13.5"), params[1].ReferenceRanges[0].MinValue)
	require.NotNil(t, params[0].ReferenceRanges)
}

func TestParametersUnknownID(t *testing.T) {
	svc := newService(t, newFakeParameters(), nil)

	_, err := svc.Parameters(labContext(), []int64{1, 42})
	require.ErrorIs(t, err, catalog.ErrParameterNotFound)
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	require.Equal(t, map[string]any{"parameterIds": []int64{42}}, appErr.Details)
}

func TestParametersMissingLab(t *testing.T) {
	source := newFakeParameters()
	source.err = repo.ErrLabMissing
	svc := newService(t, source, nil)

	_, err := svc.Parameters(context.Background(), []int64{1})
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "LAB_REQUIRED", appErr.Code)
}

func TestParametersInvalidReferenceJSON(t *testing.T) {
	source := newFakeParameters()
	source.rows[9] = repo.ParameterRow{ID: 9, Name: "Broken", ReferenceRanges: []byte(`{"not":"a list"}`)}
	svc := newService(t, source, nil)

	_, err := svc.Parameters(labContext(), []int64{9})
	require.ErrorContains(t, err, "parameter 9")
}

func TestParametersServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	source := newFakeParameters()
	svc := newService(t, source, catalog.NewCache(client, time.Minute))

	first, err := svc.Parameters(labContext(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, source.calls, 1)
	require.True(t, mr.Exists("lab:7:parameter:1"))

	second, err := svc.Parameters(labContext(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, source.calls, 1)
	require.Equal(t, first, second)

	// another lab must not see lab 7 entries
	_, err = svc.Parameters(tenant.WithLab(context.Background(), "8"), []int64{1})
	require.NoError(t, err)
	require.Len(t, source.calls, 2)
}

func TestParametersCacheFailureFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	source := newFakeParameters()
	svc := newService(t, source, catalog.NewCache(client, time.Minute))

	params, err := svc.Parameters(labContext(), []int64{2})
	require.NoError(t, err)
	require.Equal(t, "Glucose", params[0].Name)
}

func TestSuggestPrice(t *testing.T) {
	svc := newService(t, newFakeParameters(), nil)

	price, err := svc.SuggestPrice(labContext(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "249.50", price)
}

func TestResolveRange(t *testing.T) {
	svc := newService(t, newFakeParameters(), nil)

	sel, err := svc.ResolveRange(labContext(), 1, reference.Demographics{Age: intPtr(35), Gender: strPtr("Female")})
	require.NoError(t, err)
	require.Equal(t, 1, sel.Index)
	require.Equal(t, reference.RuleExact, sel.Rule)

	sel, err = svc.ResolveRange(labContext(), 2, reference.Demographics{})
	require.NoError(t, err)
	require.Nil(t, sel.Range)
	require.Equal(t, reference.RuleNone, sel.Rule)
}

func TestNewServiceRequiresSource(t *testing.T) {
	_, err := catalog.NewService(catalog.ServiceConfig{})
	require.Error(t, err)
}
