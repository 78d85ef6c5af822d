package identity

import "context"

type scopeKey struct{}

// WithScope stores the caller scope in ctx.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the caller scope set by the auth middleware.
func FromContext(ctx context.Context) (Scope, error) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	if !ok {
		return Scope{}, ErrMissingScope
	}
	return s, nil
}
