package authorization

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/scope"
	"github.com/smallbiznis/estatehub/pkg/db"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	estateA snowflake.ID = 100
	estateB snowflake.ID = 200
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	enforcer, err := NewEnforcer(db.NewTest(t))
	require.NoError(t, err)
	return NewGuard(Params{Enforcer: enforcer})
}

func managerOf(estateID snowflake.ID) identity.Principal {
	return identity.NewEstateManager(7, estateID)
}

func TestAuthorizeSuperAdminAnyEstate(t *testing.T) {
	g := newTestGuard(t)
	admin := identity.NewSuperAdmin(1)

	for _, estateID := range []snowflake.ID{estateA, estateB} {
		assert.NoError(t, g.Authorize(context.Background(), admin, Update(ObjectUnit), estateID))
	}
}

func TestAuthorizeManagerOwnEstateOnly(t *testing.T) {
	g := newTestGuard(t)
	ctx := context.Background()
	manager := managerOf(estateA)

	assert.NoError(t, g.Authorize(ctx, manager, View(ObjectFee), estateA))
	assert.ErrorIs(t, g.Authorize(ctx, manager, View(ObjectFee), estateB), ErrCrossTenantAccess)
	assert.ErrorIs(t, g.Authorize(ctx, manager, Delete(ObjectPayment), estateB), ErrCrossTenantAccess)
}

func TestAuthorizeManagerWithoutEstate(t *testing.T) {
	g := newTestGuard(t)
	orphan := identity.Principal{ID: 9, Role: identity.RoleEstateManager}

	err := g.Authorize(context.Background(), orphan, View(ObjectUnit), estateA)
	assert.ErrorIs(t, err, scope.ErrMissingAffiliation)
}

func TestManagerCannotCreateOrDeleteEstates(t *testing.T) {
	g := newTestGuard(t)
	ctx := context.Background()
	manager := managerOf(estateA)

	assert.ErrorIs(t, g.Authorize(ctx, manager, Delete(ObjectEstate), estateA), ErrInsufficientScope)
	_, err := g.AuthorizeCreate(ctx, manager, ObjectEstate, 0)
	assert.ErrorIs(t, err, ErrInsufficientScope)
	assert.NoError(t, g.Authorize(ctx, manager, Update(ObjectEstate), estateA))
}

func TestOverallSummaryIsSuperAdminOnly(t *testing.T) {
	g := newTestGuard(t)
	ctx := context.Background()
	action := Report(VerbOverallSummary)

	assert.NoError(t, g.RequirePermission(ctx, identity.NewSuperAdmin(1), action))
	assert.ErrorIs(t, g.RequirePermission(ctx, managerOf(estateA), action), ErrInsufficientScope)
}

func TestAuthorizeCreate(t *testing.T) {
	g := newTestGuard(t)
	ctx := context.Background()

	got, err := g.AuthorizeCreate(ctx, managerOf(estateA), ObjectUnit, 0)
	require.NoError(t, err)
	assert.Equal(t, estateA, got)

	got, err = g.AuthorizeCreate(ctx, managerOf(estateA), ObjectUnit, estateA)
	require.NoError(t, err)
	assert.Equal(t, estateA, got)

	_, err = g.AuthorizeCreate(ctx, managerOf(estateA), ObjectUnit, estateB)
	assert.ErrorIs(t, err, ErrCrossTenantAccess)

	_, err = g.AuthorizeCreate(ctx, identity.NewSuperAdmin(1), ObjectUnit, 0)
	assert.True(t, repository.IsValidationError(err))

	got, err = g.AuthorizeCreate(ctx, identity.NewSuperAdmin(1), ObjectUnit, estateB)
	require.NoError(t, err)
	assert.Equal(t, estateB, got)
}

func TestScopeFilter(t *testing.T) {
	g := newTestGuard(t)
	ctx := context.Background()

	all, err := g.ScopeFilter(ctx, identity.NewSuperAdmin(1), ObjectUnit)
	require.NoError(t, err)
	assert.True(t, all.IsUnrestricted())
	assert.True(t, all.Matches(estateB))

	own, err := g.ScopeFilter(ctx, managerOf(estateA), ObjectUnit)
	require.NoError(t, err)
	assert.True(t, own.Matches(estateA))
	assert.False(t, own.Matches(estateB))
}

func TestInvalidAction(t *testing.T) {
	g := newTestGuard(t)
	err := g.Authorize(context.Background(), identity.NewSuperAdmin(1), Action{}, estateA)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestSeedPoliciesIsIdempotent(t *testing.T) {
	conn := db.NewTest(t)
	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)
	before, err := enforcer.GetPolicy()
	require.NoError(t, err)

	require.NoError(t, SeedPolicies(enforcer))
	after, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestAsNotFound(t *testing.T) {
	assert.ErrorIs(t, AsNotFound(ErrCrossTenantAccess), repository.ErrNotFound)
	assert.ErrorIs(t, AsNotFound(ErrInsufficientScope), ErrInsufficientScope)
	assert.NoError(t, AsNotFound(nil))
}
