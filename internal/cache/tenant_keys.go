package cache

import (
	"context"
	"strconv"

	"github.com/noah-isme/backend-lab/internal/tenant"
)

// KeyParameter returns a per-lab cache key for a parameter definition.
func KeyParameter(ctx context.Context, id int64) string {
	return keyFor(ctx, "parameter:"+strconv.FormatInt(id, 10))
}

func keyFor(ctx context.Context, base string) string {
	id, ok := tenant.From(ctx)
	if !ok {
		return base
	}
	return tenant.PrefixKey(id, base)
}
