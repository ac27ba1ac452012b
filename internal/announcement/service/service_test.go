package service

import (
	"context"
	"testing"

	"github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/internal/announcement/repository"
	"github.com/smallbiznis/estatehub/internal/authorization"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	estaterepository "github.com/smallbiznis/estatehub/internal/estate/repository"
	"github.com/smallbiznis/estatehub/internal/estatetest"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
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
	})
}

func TestCreateUsesAuthorEstate(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	author := identity.NewEstateManager(42, a.ID)

	got, err := svc.Create(context.Background(), author, domain.CreateAnnouncementRequest{
		Title:   "Water shutdown",
		Message: "Saturday 9-12",
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.EstateID)
	assert.Equal(t, author.ID, got.CreatedBy)
	assert.True(t, got.IsActive)
}

func TestCreateForOtherEstateIsDenied(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)

	_, err := svc.Create(context.Background(), identity.NewEstateManager(42, a.ID), domain.CreateAnnouncementRequest{
		EstateID: b.ID,
		Title:    "Hello",
		Message:  "neighbours",
	})
	assert.ErrorIs(t, err, authorization.ErrCrossTenantAccess)
}

func TestDeactivateIsSoft(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	p := identity.NewEstateManager(42, a.ID)

	created, err := svc.Create(ctx, p, domain.CreateAnnouncementRequest{Title: "Fogging", Message: "Tuesday"})
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(ctx, p, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	got, err := svc.Get(ctx, p, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active := true
	seq, err := svc.List(ctx, p, domain.ListAnnouncementRequest{IsActive: &active})
	require.NoError(t, err)
	items, err := pkgrepository.Collect(seq)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeactivateForeignAnnouncementIsNotFound(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)

	created, err := svc.Create(ctx, identity.NewEstateManager(1, b.ID), domain.CreateAnnouncementRequest{Title: "Gate", Message: "closed"})
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, identity.NewEstateManager(2, a.ID), created.ID)
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)
}
