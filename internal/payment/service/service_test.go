package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	"github.com/smallbiznis/estatehub/internal/estatetest"
	feerepository "github.com/smallbiznis/estatehub/internal/fee/repository"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/internal/payment/repository"
	unitrepository "github.com/smallbiznis/estatehub/internal/unit/repository"
	"github.com/smallbiznis/estatehub/pkg/money"
	pkgrepository "github.com/smallbiznis/estatehub/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(env *estatetest.Env) domain.Service {
	return New(Params{
		DB:       env.DB,
		Log:      env.Log,
		GenID:    env.GenID,
		Clock:    env.Clock,
		Guard:    env.Guard,
		Repo:     repository.Provide(),
		FeeRepo:  feerepository.Provide(),
		UnitRepo: unitrepository.Provide(),
	})
}

func manager(estateID snowflake.ID) identity.Principal {
	return identity.NewEstateManager(70, estateID)
}

func TestCreateCopiesEstateAndAmountFromFee(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	unit := env.Unit(t, a.ID, "1")
	fee := env.Fee(t, a.ID, 1500, estatedomain.FrequencyMonthly)

	payment, err := svc.Create(context.Background(), manager(a.ID), domain.CreatePaymentRequest{
		FeeID:  fee.ID,
		UnitID: unit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, payment.EstateID)
	assert.Equal(t, int64(1500), payment.Amount)
	assert.Equal(t, domain.StatusPaid, payment.Status)
	assert.Equal(t, domain.MethodBankTransfer, payment.Method)
	require.NotNil(t, payment.PaidAt)
}

func TestCreateRejectsFeeAndUnitFromDifferentEstates(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)
	fee := env.Fee(t, a.ID, 1000, estatedomain.FrequencyMonthly)
	foreignUnit := env.Unit(t, b.ID, "9")

	_, err := svc.Create(context.Background(), identity.NewSuperAdmin(1), domain.CreatePaymentRequest{
		FeeID:  fee.ID,
		UnitID: foreignUnit.ID,
	})
	assert.ErrorIs(t, err, authorization.ErrCrossTenantAccess)
}

func TestManagerCannotPayForeignFee(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)
	fee := env.Fee(t, b.ID, 1000, estatedomain.FrequencyMonthly)
	unit := env.Unit(t, b.ID, "1")

	_, err := svc.Create(context.Background(), manager(a.ID), domain.CreatePaymentRequest{
		FeeID:  fee.ID,
		UnitID: unit.ID,
	})
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)
}

func TestMarkPaidAndUnpaid(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	unit := env.Unit(t, a.ID, "1")
	fee := env.Fee(t, a.ID, 1000, estatedomain.FrequencyMonthly)

	payment, err := svc.Create(ctx, manager(a.ID), domain.CreatePaymentRequest{
		FeeID:  fee.ID,
		UnitID: unit.ID,
		Status: domain.StatusUnpaid,
		Method: domain.MethodCash,
	})
	require.NoError(t, err)
	assert.Nil(t, payment.PaidAt)

	env.Clock.Advance(time.Hour)
	paid, err := svc.MarkPaid(ctx, manager(a.ID), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	env.Clock.Advance(time.Hour)
	again, err := svc.MarkPaid(ctx, manager(a.ID), payment.ID)
	require.NoError(t, err)
	assert.True(t, again.PaidAt.Equal(firstPaidAt))

	unpaid, err := svc.MarkUnpaid(ctx, manager(a.ID), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnpaid, unpaid.Status)
	assert.Nil(t, unpaid.PaidAt)
}

func TestListAndMutateAreScoped(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	a := env.Estate(t, "alpha", estatedomain.FrequencyMonthly)
	b := env.Estate(t, "bravo", estatedomain.FrequencyMonthly)
	feeA := env.Fee(t, a.ID, 1000, estatedomain.FrequencyMonthly)
	feeB := env.Fee(t, b.ID, 1000, estatedomain.FrequencyMonthly)
	env.Payment(t, a.ID, feeA.ID, env.Unit(t, a.ID, "1").ID, 1000, domain.StatusPaid)
	foreign := env.Payment(t, b.ID, feeB.ID, env.Unit(t, b.ID, "1").ID, 1000, domain.StatusPaid)

	seq, err := svc.List(ctx, manager(a.ID), domain.ListPaymentRequest{OrderBy: "-paid_at"})
	require.NoError(t, err)
	items, err := pkgrepository.Collect(seq)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].EstateID)

	_, err = svc.MarkUnpaid(ctx, manager(a.ID), foreign.ID)
	assert.ErrorIs(t, err, pkgrepository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, manager(a.ID), foreign.ID), pkgrepository.ErrNotFound)

	got, err := svc.Get(ctx, identity.NewSuperAdmin(1), foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status)
}

func TestCreateValidation(t *testing.T) {
	env := estatetest.New(t)
	svc := newService(env)
	ctx := context.Background()
	p := identity.NewSuperAdmin(1)

	_, err := svc.Create(ctx, p, domain.CreatePaymentRequest{UnitID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidFee)
	_, err = svc.Create(ctx, p, domain.CreatePaymentRequest{FeeID: 1, UnitID: 1, Method: "CHEQUE"})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
	_, err = svc.Create(ctx, p, domain.CreatePaymentRequest{FeeID: 1, UnitID: 1, Amount: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.Create(ctx, p, domain.CreatePaymentRequest{FeeID: 1, UnitID: 1, Amount: money.MaxAmount + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	tooLarge := money.MaxAmount + 1
	_, err = svc.Update(ctx, p, 1, domain.UpdatePaymentRequest{Amount: &tooLarge})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
