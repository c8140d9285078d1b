package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-lab/internal/cache"
	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/obs"
	"github.com/noah-isme/backend-lab/internal/pricing"
	"github.com/noah-isme/backend-lab/internal/reference"
	"github.com/noah-isme/backend-lab/internal/repo"
)

// ErrParameterNotFound is returned when a requested parameter does not exist in the lab.
var ErrParameterNotFound = errors.New("parameter not found")

type parameterSource interface {
	ByIDs(ctx context.Context, ids []int64) ([]repo.ParameterRow, error)
}

// Service loads lab parameters and runs range resolution and price aggregation over them.
type Service struct {
	params parameterSource
	cache  *Cache
	logger zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Parameters parameterSource
	Cache      *Cache
	Logger     zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Parameters == nil {
		return nil, errors.New("catalog: parameter source is required")
	}
	return &Service{params: cfg.Parameters, cache: cfg.Cache, logger: cfg.Logger}, nil
}

// Parameters returns the lab's parameters in request order. Any unknown id fails the whole lookup.
func (s *Service) Parameters(ctx context.Context, ids []int64) ([]lab.Parameter, error) {
	found := make(map[int64]lab.Parameter, len(ids))
	var missing []int64
	for _, id := range ids {
		if _, seen := found[id]; seen {
			continue
		}
		if p, ok := s.cached(ctx, id); ok {
			found[id] = p
			continue
		}
		missing = append(missing, id)
		found[id] = lab.Parameter{}
	}

	if len(missing) > 0 {
		rows, err := s.params.ByIDs(ctx, missing)
		if err != nil {
			return nil, repo.HTTPError("load parameters", err)
		}
		for _, row := range rows {
			p, err := decodeParameter(row)
			if err != nil {
				return nil, err
			}
			found[p.ID] = p
			s.store(ctx, p)
		}
	}

	out := make([]lab.Parameter, 0, len(ids))
	var unknown []int64
	for _, id := range ids {
		p := found[id]
		if p.ID == 0 {
			unknown = append(unknown, id)
			continue
		}
		out = append(out, p)
	}
	if len(unknown) > 0 {
		appErr := common.NewAppError("NOT_FOUND", "parameter not found", http.StatusNotFound, ErrParameterNotFound)
		appErr.Details = map[string]any{"parameterIds": unknown}
		return nil, appErr
	}
	return out, nil
}

// SuggestPrice sums the parameter prices as the suggested test bundle price.
func (s *Service) SuggestPrice(ctx context.Context, ids []int64) (string, error) {
	params, err := s.Parameters(ctx, ids)
	if err != nil {
		return "", err
	}
	return pricing.Aggregate(params), nil
}

// ResolveRange selects the applicable reference range of one parameter for the patient.
func (s *Service) ResolveRange(ctx context.Context, parameterID int64, d reference.Demographics) (reference.Selection, error) {
	params, err := s.Parameters(ctx, []int64{parameterID})
	if err != nil {
		return reference.Selection{}, err
	}
	sel := reference.Select(params[0].ReferenceRanges, d)
	obs.ObserveRangeResolution(string(sel.Rule))
	if sel.Rule != reference.RuleExact {
		s.logger.Debug().
			Int64("parameter_id", parameterID).
			Str("rule", string(sel.Rule)).
			Int("ranges", len(params[0].ReferenceRanges)).
			Msg("reference range fallback")
	}
	return sel, nil
}

func (s *Service) cached(ctx context.Context, id int64) (lab.Parameter, bool) {
	if s.cache == nil {
		return lab.Parameter{}, false
	}
	var p lab.Parameter
	ok, err := s.cache.GetJSON(ctx, cache.KeyParameter(ctx, id), &p)
	switch {
	case err != nil:
		obs.ObserveCache("error")
		s.logger.Warn().Err(err).Int64("parameter_id", id).Msg("catalog cache read failed")
		return lab.Parameter{}, false
	case !ok:
		obs.ObserveCache("miss")
		return lab.Parameter{}, false
	default:
		obs.ObserveCache("hit")
		return p, true
	}
}

func (s *Service) store(ctx context.Context, p lab.Parameter) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, cache.KeyParameter(ctx, p.ID), p); err != nil {
		s.logger.Warn().Err(err).Int64("parameter_id", p.ID).Msg("catalog cache write failed")
	}
}

func decodeParameter(row repo.ParameterRow) (lab.Parameter, error) {
	p := lab.Parameter{
		ID:              row.ID,
		Name:            row.Name,
		Unit:            row.Unit,
		Price:           row.Price,
		ReferenceRanges: []reference.Range{},
	}
	if len(row.ReferenceRanges) > 0 {
		if err := json.Unmarshal(row.ReferenceRanges, &p.ReferenceRanges); err != nil {
			return lab.Parameter{}, fmt.Errorf("decode reference ranges of parameter %d: %w", row.ID, err)
		}
		if p.ReferenceRanges == nil {
			p.ReferenceRanges = []reference.Range{}
		}
	}
	return p, nil
}
