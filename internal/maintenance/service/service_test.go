package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	estaterepository "github.com/smallbiznis/estatehub/internal/estate/repository"
	"github.com/smallbiznis/estatehub/internal/estatetest"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/maintenance/domain"
	"github.com/smallbiznis/estatehub/internal/maintenance/repository"
	unitrepository "github.com/smallbiznis/estatehub/internal/unit/repository"
	pkgrepository "github.com/smallbiznis/estatehub/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(env *estatetest.Env) domain.Service {
	return New(Params{
		DB:         env.DB,
		Log:        env.Log,
		GenID:      env.GenID,
		Clock:      env.Clock,
		Guard:      env.Guard,
		Repo:       repository.Provide(),
		EstateRepo: estaterepository.Provide(),
		UnitRepo:   unitrepository.Provide(),
	})
}

func manager(estateID snowflake.ID) identity.Principal {
	return identity.NewEstateManager(60, estateID)
}

func TestManagerCannotReadTicketOfAnotherEstate(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)

	ticket, err := svc.Create(ctx, manager(b.ID), domain.CreateTicketRequest{
		Title:    "Broken pipe",
		Category: domain.CategoryWater,
	})
	require.NoError(t, err)

	_, errForeign := svc.Get(ctx, manager(a.ID), ticket.ID)
	_, errAbsent := svc.Get(ctx, manager(a.ID), env.GenID.Generate())

	assert.ErrorIs(t, errForeign, pkgrepository.ErrNotFound)
	assert.ErrorIs(t, errAbsent, pkgrepository.ErrNotFound)
	assert.Equal(t, errAbsent, errForeign)
}

func TestCreateTicketStartsOpen(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	unit := env.Unit(t, a.ID, "1")

	ticket, err := svc.Create(context.Background(), manager(a.ID), domain.CreateTicketRequest{
		UnitID: &unit.ID,
		Title:  "Street light out",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, ticket.Status)
	assert.Equal(t, domain.CategoryOther, ticket.Category)
	assert.Nil(t, ticket.ResolvedAt)
	require.NotNil(t, ticket.UnitID)
	assert.Equal(t, unit.ID, *ticket.UnitID)
}

func TestCreateTicketRejectsUnitOfAnotherEstate(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)
	foreign := env.Unit(t, b.ID, "9")

	_, err := svc.Create(context.Background(), manager(a.ID), domain.CreateTicketRequest{
		UnitID: &foreign.ID,
		Title:  "Leak",
	})
	assert.ErrorIs(t, err, domain.ErrUnitNotInEstate)
}

func TestResolveAndReopen(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)

	ticket, err := svc.Create(ctx, manager(a.ID), domain.CreateTicketRequest{Title: "Gate stuck", Category: domain.CategorySecurity})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, manager(a.ID), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	assert.True(t, resolved.ResolvedAt.Equal(estatetest.Epoch))

	reopened, err := svc.Reopen(ctx, manager(a.ID), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, reopened.Status)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestResolveForeignTicketIsNotFound(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)

	ticket, err := svc.Create(ctx, manager(b.ID), domain.CreateTicketRequest{Title: "Bins"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, manager(a.ID), ticket.ID)
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)

	got, err := svc.Get(ctx, manager(b.ID), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, got.Status)
}

func TestListFiltersByStatusAndCategory(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	p := manager(a.ID)

	water, err := svc.Create(ctx, p, domain.CreateTicketRequest{Title: "Low pressure", Category: domain.CategoryWater})
	require.NoError(t, err)
	_, err = svc.Create(ctx, p, domain.CreateTicketRequest{Title: "Power cut", Category: domain.CategoryElectricity})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, p, water.ID)
	require.NoError(t, err)

	seq, err := svc.List(ctx, p, domain.ListTicketRequest{Status: domain.StatusOpen})
	require.NoError(t, err)
	open, err := pkgrepository.Collect(seq)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, domain.CategoryElectricity, open[0].Category)

	seq, err = svc.List(ctx, p, domain.ListTicketRequest{Search: "PRESSURE"})
	require.NoError(t, err)
	found, err := pkgrepository.Collect(seq)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, water.ID, found[0].ID)

	_, err = svc.List(ctx, p, domain.ListTicketRequest{Category: "PLUMBING"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}
