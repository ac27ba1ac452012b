package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListPaymentRequest struct {
	EstateID snowflake.ID
	FeeID    snowflake.ID
	UnitID   snowflake.ID
	Status   Status
	Method   Method
	OrderBy  string
}

// CreatePaymentRequest records a payment. A zero Amount takes the fee amount;
// an empty Status records the payment as PAID.
type CreatePaymentRequest struct {
	FeeID     snowflake.ID
	UnitID    snowflake.ID
	Amount    int64
	Method    Method
	Status    Status
	Reference string
}

type UpdatePaymentRequest struct {
	Amount    *int64
	Method    *Method
	Reference *string
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListPaymentRequest) (iter.Seq2[*Payment, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Payment, error)
	Create(ctx context.Context, p identity.Principal, req CreatePaymentRequest) (Payment, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdatePaymentRequest) (Payment, error)
	MarkPaid(ctx context.Context, p identity.Principal, id snowflake.ID) (Payment, error)
	MarkUnpaid(ctx context.Context, p identity.Principal, id snowflake.ID) (Payment, error)
	Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error
}

var (
	ErrInvalidFee    = repository.NewValidationError("fee_id", "invalid_fee")
	ErrInvalidUnit   = repository.NewValidationError("unit_id", "invalid_unit")
	ErrInvalidAmount = repository.NewValidationError("amount", "invalid_amount")
	ErrInvalidMethod = repository.NewValidationError("method", "invalid_method")
	ErrInvalidStatus = repository.NewValidationError("status", "invalid_status")
)
