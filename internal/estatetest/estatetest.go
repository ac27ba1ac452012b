// Package estatetest builds in-memory fixtures for service tests.
package estatetest

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	"github.com/smallbiznis/estatehub/internal/migration"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type Env struct {
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock *clock.FakeClock
	Guard *authorization.Guard
}

func New(t testing.TB) *Env {
	t.Helper()

	conn := db.NewTest(t, migration.Models()...)
	enforcer, err := authorization.NewEnforcer(conn)
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	return &Env{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(Epoch),
		Guard: authorization.NewGuard(authorization.Params{Enforcer: enforcer}),
	}
}

func (e *Env) Estate(t testing.TB, name string, frequency estatedomain.Frequency) estatedomain.Estate {
	t.Helper()
	estate := estatedomain.Estate{
		ID:           e.GenID.Generate(),
		Name:         name,
		Slug:         name,
		Type:         estatedomain.EstateTypePrivate,
		FeeFrequency: frequency,
		IsActive:     true,
		CreatedAt:    e.Clock.Now(),
		UpdatedAt:    e.Clock.Now(),
	}
	e.create(t, &estate)
	return estate
}

func (e *Env) Unit(t testing.TB, estateID snowflake.ID, number string) unitdomain.Unit {
	t.Helper()
	unit := unitdomain.Unit{
		ID:         e.GenID.Generate(),
		EstateID:   estateID,
		UnitNumber: number,
		CreatedAt:  e.Clock.Now(),
		UpdatedAt:  e.Clock.Now(),
	}
	e.create(t, &unit)
	return unit
}

func (e *Env) Fee(t testing.TB, estateID snowflake.ID, amount int64, frequency estatedomain.Frequency) feedomain.Fee {
	t.Helper()
	fee := feedomain.Fee{
		ID:        e.GenID.Generate(),
		EstateID:  estateID,
		Name:      "service charge",
		Amount:    amount,
		Frequency: frequency,
		DueDay:    1,
		IsActive:  true,
		CreatedAt: e.Clock.Now(),
		UpdatedAt: e.Clock.Now(),
	}
	e.create(t, &fee)
	return fee
}

// Payment inserts a payment row as-is, without the checks the payment service
// applies. Use it to stage inconsistent data.
func (e *Env) Payment(t testing.TB, estateID, feeID, unitID snowflake.ID, amount int64, status paymentdomain.Status) paymentdomain.Payment {
	t.Helper()
	now := e.Clock.Now()
	payment := paymentdomain.Payment{
		ID:        e.GenID.Generate(),
		EstateID:  estateID,
		FeeID:     feeID,
		UnitID:    unitID,
		Amount:    amount,
		Method:    paymentdomain.MethodCash,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == paymentdomain.StatusPaid {
		payment.PaidAt = &now
	}
	e.create(t, &payment)
	// Keep creation order distinct for order-sensitive assertions.
	e.Clock.Advance(time.Second)
	return payment
}

func (e *Env) create(t testing.TB, value any) {
	t.Helper()
	if err := e.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}
