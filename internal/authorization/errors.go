package authorization

import "errors"

var (
	// ErrCrossTenantAccess denies a target outside the principal's scope.
	// Callers render it exactly like a missing record.
	ErrCrossTenantAccess = errors.New("cross_tenant_access")
	// ErrInsufficientScope denies an action the principal's role may never
	// perform, regardless of estate.
	ErrInsufficientScope = errors.New("insufficient_scope")
	ErrInvalidAction     = errors.New("invalid_action")
)
