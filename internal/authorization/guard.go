package authorization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	obsmetrics "github.com/smallbiznis/estatehub/internal/observability/metrics"
	"github.com/smallbiznis/estatehub/internal/scope"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Enforcer *casbin.SyncedEnforcer
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

// Guard is the tenant-scoped access gate. It keeps no state of its own; every
// decision is derived from the principal and the target.
type Guard struct {
	enforcer *casbin.SyncedEnforcer
	metrics  *obsmetrics.Metrics
}

func NewGuard(p Params) *Guard {
	return &Guard{
		enforcer: p.Enforcer,
		metrics:  p.Metrics,
	}
}

// Authorize allows (nil) or denies (non-nil reason) an action on one estate.
func (g *Guard) Authorize(ctx context.Context, p identity.Principal, action Action, estateID snowflake.ID) error {
	set, err := g.permit(ctx, p, action)
	if err != nil {
		return err
	}
	if !set.Contains(estateID) {
		g.record(ctx, action, ErrCrossTenantAccess)
		return ErrCrossTenantAccess
	}
	g.record(ctx, action, nil)
	return nil
}

// RequirePermission checks the role policy only. It is the gate for actions
// that have no single target estate.
func (g *Guard) RequirePermission(ctx context.Context, p identity.Principal, action Action) error {
	_, err := g.permit(ctx, p, action)
	if err == nil {
		g.record(ctx, action, nil)
	}
	return err
}

// ScopeFilter returns the predicate list queries must apply before reading rows.
func (g *Guard) ScopeFilter(ctx context.Context, p identity.Principal, object string) (Predicate, error) {
	action := View(object)
	set, err := g.permit(ctx, p, action)
	if err != nil {
		return Predicate{}, err
	}
	g.record(ctx, action, nil)
	return Predicate{set: set}, nil
}

// AuthorizeCreate resolves the estate a new record is written under. Estate
// managers may omit it (their own estate is used) but may not name another
// estate. Super admins must name one.
func (g *Guard) AuthorizeCreate(ctx context.Context, p identity.Principal, object string, declared snowflake.ID) (snowflake.ID, error) {
	action := Create(object)
	set, err := g.permit(ctx, p, action)
	if err != nil {
		return 0, err
	}

	if set.IsUnrestricted() {
		if declared == 0 {
			return 0, repository.NewValidationError("estate_id", "required")
		}
		g.record(ctx, action, nil)
		return declared, nil
	}

	own, _ := set.EstateID()
	if declared != 0 && declared != own {
		g.record(ctx, action, ErrCrossTenantAccess)
		return 0, ErrCrossTenantAccess
	}
	g.record(ctx, action, nil)
	return own, nil
}

func (g *Guard) permit(ctx context.Context, p identity.Principal, action Action) (scope.Set, error) {
	if strings.TrimSpace(action.Object) == "" || strings.TrimSpace(action.Verb) == "" {
		return scope.Set{}, ErrInvalidAction
	}

	set, err := scope.Resolve(p)
	if err != nil {
		g.record(ctx, action, err)
		return scope.Set{}, err
	}

	allowed, err := g.enforcer.Enforce(p.Subject(), action.Object, action.Verb)
	if err != nil {
		return scope.Set{}, fmt.Errorf("enforce %s: %w", action, err)
	}
	if !allowed {
		g.record(ctx, action, ErrInsufficientScope)
		return scope.Set{}, ErrInsufficientScope
	}
	return set, nil
}

func (g *Guard) record(ctx context.Context, action Action, reason error) {
	if g.metrics == nil {
		return
	}
	outcome := "allow"
	switch {
	case reason == nil:
	case errors.Is(reason, ErrCrossTenantAccess):
		outcome = "cross_tenant_access"
	case errors.Is(reason, ErrInsufficientScope):
		outcome = "insufficient_scope"
	case errors.Is(reason, scope.ErrMissingAffiliation):
		outcome = "missing_affiliation"
	default:
		outcome = "denied"
	}
	g.metrics.RecordAuthorization(ctx, action.Object, action.Verb, outcome)
}

// AsNotFound collapses a cross-tenant denial into the not-found shape so the
// caller cannot detect other estates' records.
func AsNotFound(err error) error {
	if errors.Is(err, ErrCrossTenantAccess) {
		return repository.ErrNotFound
	}
	return err
}
