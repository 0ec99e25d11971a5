package auth

import "context"

// Identity is the verified caller, derived once from the bearer token and
// handed explicitly to every use case.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by the access gate, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
