package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListEstateRequest struct {
	Search   string
	Type     EstateType
	IsActive *bool
	OrderBy  string
}

type CreateEstateRequest struct {
	Name         string
	Type         EstateType
	FeeFrequency Frequency
	Address      string
}

type UpdateEstateRequest struct {
	Name         *string
	Type         *EstateType
	FeeFrequency *Frequency
	Address      *string
	IsActive     *bool
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListEstateRequest) (iter.Seq2[*Estate, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Estate, error)
	Create(ctx context.Context, p identity.Principal, req CreateEstateRequest) (Estate, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdateEstateRequest) (Estate, error)
	Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error
}

var (
	ErrInvalidName         = repository.NewValidationError("name", "invalid_name")
	ErrInvalidType         = repository.NewValidationError("type", "invalid_type")
	ErrInvalidFeeFrequency = repository.NewValidationError("fee_frequency", "invalid_fee_frequency")
)
