package principalcontext

import (
	"context"

	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
)

// PrincipalContextKey is the request context key for the authenticated principal.
type PrincipalContextKey struct{}

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey{}, p)
}

// PrincipalFromContext returns the principal from context, if set.
func PrincipalFromContext(ctx context.Context) (identity.Principal, bool) {
	if ctx == nil {
		return identity.Principal{}, false
	}
	p, ok := ctx.Value(PrincipalContextKey{}).(identity.Principal)
	if !ok || p.ID == 0 {
		return identity.Principal{}, false
	}
	return p, true
}
