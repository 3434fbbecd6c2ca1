package tenant

import "context"

type idContextKey struct{}

// WithID stores the resolved tenant id in ctx.
func WithID(ctx context.Context, id int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, idContextKey{}, id)
}

// FromContext returns the tenant id stored by WithID.
func FromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(idContextKey{}).(int64)
	return id, ok
}
