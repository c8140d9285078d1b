package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/obs"
	"github.com/noah-isme/backend-lab/internal/reference"
	"github.com/noah-isme/backend-lab/internal/result"
)

type parameterLoader interface {
	Parameters(ctx context.Context, ids []int64) ([]lab.Parameter, error)
}

// Entry is one value typed in by the technician.
type Entry struct {
	ParameterID int64  `json:"parameterId" validate:"gt=0"`
	Value       string `json:"value"`
}

// SnapshotRequest groups the entered values for one patient report.
type SnapshotRequest struct {
	Patient reference.Demographics `json:"patient"`
	Entries []Entry                `json:"entries" validate:"required,min=1,dive"`
}

// Snapshot is a batch of frozen result records, ready to be persisted verbatim.
type Snapshot struct {
	BatchID string          `json:"batchId"`
	TakenAt time.Time       `json:"takenAt"`
	Records []result.Record `json:"records"`
}

// Service freezes entered results against the lab's parameter definitions.
type Service struct {
	params parameterLoader
	logger zerolog.Logger
	now    func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Parameters parameterLoader
	Logger     zerolog.Logger
	Now        func() time.Time
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Parameters == nil {
		return nil, errors.New("reporting: parameter loader is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{params: cfg.Parameters, logger: cfg.Logger, now: now}, nil
}

// Snapshot resolves, classifies and formats every entry. Records follow entry order.
func (s *Service) Snapshot(ctx context.Context, req SnapshotRequest) (Snapshot, error) {
	ids := make([]int64, len(req.Entries))
	for i, e := range req.Entries {
		ids[i] = e.ParameterID
	}
	params, err := s.params.Parameters(ctx, ids)
	if err != nil {
		return Snapshot{}, err
	}

	records := make([]result.Record, len(req.Entries))
	abnormal := 0
	for i, e := range req.Entries {
		records[i] = result.Snapshot(params[i], e.Value, req.Patient)
		obs.ObserveClassification(string(records[i].Status))
		if records[i].IsAbnormal {
			abnormal++
		}
	}

	snap := Snapshot{BatchID: uuid.NewString(), TakenAt: s.now().UTC(), Records: records}
	s.logger.Debug().
		Str("batch_id", snap.BatchID).
		Int("records", len(records)).
		Int("abnormal", abnormal).
		Msg("result snapshot computed")
	return snap, nil
}
