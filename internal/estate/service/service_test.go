package service

import (
	"context"
	"testing"

	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/estate/domain"
	"github.com/smallbiznis/estatehub/internal/estate/repository"
	"github.com/smallbiznis/estatehub/internal/estatetest"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	pkgrepository "github.com/smallbiznis/estatehub/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(env *estatetest.Env) domain.Service {
	return New(Params{
		DB:    env.DB,
		Log:   env.Log,
		GenID: env.GenID,
		Clock: env.Clock,
		Guard: env.Guard,
		Repo:  repository.Provide(),
	})
}

func TestCreateEstateDerivesSlug(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	admin := identity.NewSuperAdmin(1)

	first, err := svc.Create(ctx, admin, domain.CreateEstateRequest{
		Name: "Green Valley Estate",
		Type: domain.EstateTypePrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, "green-valley-estate", first.Slug)
	assert.Equal(t, domain.FrequencyMonthly, first.FeeFrequency)
	assert.True(t, first.IsActive)

	second, err := svc.Create(ctx, admin, domain.CreateEstateRequest{
		Name: "Green Valley  Estate",
		Type: domain.EstateTypeGovernment,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "green-valley-estate-")
}

func TestManagerCannotCreateEstate(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	own := env.Estate(t, "alpha", domain.FrequencyMonthly)

	_, err := svc.Create(context.Background(), identity.NewEstateManager(5, own.ID), domain.CreateEstateRequest{
		Name: "Rogue",
		Type: domain.EstateTypePrivate,
	})
	assert.ErrorIs(t, err, authorization.ErrInsufficientScope)
}

func TestManagerSeesOnlyOwnEstate(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", domain.FrequencyMonthly)
	b := env.Estate(t, "bravo", domain.FrequencyYearly)
	p := identity.NewEstateManager(5, a.ID)

	seq, err := svc.List(ctx, p, domain.ListEstateRequest{})
	require.NoError(t, err)
	items, err := pkgrepository.Collect(seq)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	_, err = svc.Get(ctx, p, b.ID)
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)

	name := "renamed"
	_, err = svc.Update(ctx, p, b.ID, domain.UpdateEstateRequest{Name: &name})
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)

	updated, err := svc.Update(ctx, p, a.ID, domain.UpdateEstateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestDeleteEstateCascades(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", domain.FrequencyMonthly)
	b := env.Estate(t, "bravo", domain.FrequencyMonthly)
	unitA := env.Unit(t, a.ID, "1")
	feeA := env.Fee(t, a.ID, 1000, domain.FrequencyMonthly)
	env.Payment(t, a.ID, feeA.ID, unitA.ID, 1000, paymentdomain.StatusPaid)
	env.Unit(t, b.ID, "1")

	assert.ErrorIs(t,
		svc.Delete(context.Background(), identity.NewEstateManager(5, a.ID), a.ID),
		authorization.ErrInsufficientScope,
	)
	require.NoError(t, svc.Delete(context.Background(), identity.NewSuperAdmin(1), a.ID))

	var units, payments int64
	require.NoError(t, env.DB.Model(&unitdomain.Unit{}).Count(&units).Error)
	require.NoError(t, env.DB.Model(&paymentdomain.Payment{}).Count(&payments).Error)
	assert.Equal(t, int64(1), units)
	assert.Zero(t, payments)

	_, err := svc.Get(context.Background(), identity.NewSuperAdmin(1), a.ID)
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)
}

func TestCreateEstateValidation(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	admin := identity.NewSuperAdmin(1)

	_, err := svc.Create(context.Background(), admin, domain.CreateEstateRequest{Name: "x", Type: "CONDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = svc.Create(context.Background(), admin, domain.CreateEstateRequest{
		Name:         "x",
		Type:         domain.EstateTypePrivate,
		FeeFrequency: "DAILY",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidFeeFrequency)
}
