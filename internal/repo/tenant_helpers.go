package repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/noah-isme/backend-lab/internal/common"
	"github.com/noah-isme/backend-lab/internal/tenant"
)

var (
	// ErrLabMissing indicates the lab identifier was not found in context.
	ErrLabMissing = errors.New("lab missing")
	// ErrLabInvalid indicates the lab identifier could not be parsed.
	ErrLabInvalid = errors.New("lab invalid")
)

func labIDFromContext(ctx context.Context) (int64, error) {
	raw, ok := tenant.From(ctx)
	if !ok {
		return 0, ErrLabMissing
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLabInvalid, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: non-positive id %d", ErrLabInvalid, id)
	}
	return id, nil
}

// HTTPError maps lab scoping failures to 400 AppErrors and wraps anything else with op.
func HTTPError(op string, err error) error {
	switch {
	case errors.Is(err, ErrLabMissing):
		return common.NewAppError("LAB_REQUIRED", "lab is required", http.StatusBadRequest, err)
	case errors.Is(err, ErrLabInvalid):
		return common.NewAppError("LAB_INVALID", "lab id must be a positive integer", http.StatusBadRequest, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
