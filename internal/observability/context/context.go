package context

import (
	"context"
	"strings"
)

type requestIDKey struct{}
type actorKey struct{}

type actor struct {
	role     string
	id       string
	estateID string
}

// WithRequestID stores the correlation id for logs and spans.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithActor records who is acting. estateID is empty for unrestricted roles.
func WithActor(ctx context.Context, role, id, estateID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor{
		role:     strings.TrimSpace(role),
		id:       strings.TrimSpace(id),
		estateID: strings.TrimSpace(estateID),
	})
}

func ActorFromContext(ctx context.Context) (role, id, estateID string) {
	if ctx == nil {
		return "", "", ""
	}
	value, ok := ctx.Value(actorKey{}).(actor)
	if !ok {
		return "", "", ""
	}
	return value.role, value.id, value.estateID
}
