package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListFeeRequest struct {
	EstateID  snowflake.ID
	Search    string
	Frequency estatedomain.Frequency
	IsActive  *bool
	OrderBy   string
}

type CreateFeeRequest struct {
	EstateID    snowflake.ID
	Name        string
	Description string
	Amount      int64
	Frequency   estatedomain.Frequency
	DueDay      int
}

type UpdateFeeRequest struct {
	Name        *string
	Description *string
	Amount      *int64
	Frequency   *estatedomain.Frequency
	DueDay      *int
	IsActive    *bool
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListFeeRequest) (iter.Seq2[*Fee, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Fee, error)
	Create(ctx context.Context, p identity.Principal, req CreateFeeRequest) (Fee, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdateFeeRequest) (Fee, error)
	Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error
}

const (
	MinDueDay = 1
	MaxDueDay = 28
)

var (
	ErrInvalidName      = repository.NewValidationError("name", "invalid_name")
	ErrInvalidAmount    = repository.NewValidationError("amount", "invalid_amount")
	ErrInvalidFrequency = repository.NewValidationError("frequency", "invalid_frequency")
	ErrInvalidDueDay    = repository.NewValidationError("due_day", "invalid_due_day")
)
