package tenant

import "context"

// With stores the lab identifier into the provided context.
func With(ctx context.Context, id string) context.Context {
	return WithLab(ctx, id)
}
