package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListUnitRequest struct {
	EstateID   snowflake.ID
	Search     string
	Block      string
	IsOccupied *bool
	OrderBy    string
}

type CreateUnitRequest struct {
	EstateID      snowflake.ID
	UnitNumber    string
	Block         string
	OccupantName  string
	OccupantPhone string
	IsOccupied    bool
	Metadata      map[string]any
}

type UpdateUnitRequest struct {
	UnitNumber    *string
	Block         *string
	OccupantName  *string
	OccupantPhone *string
	IsOccupied    *bool
	Metadata      map[string]any
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListUnitRequest) (iter.Seq2[*Unit, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Unit, error)
	Create(ctx context.Context, p identity.Principal, req CreateUnitRequest) (Unit, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdateUnitRequest) (Unit, error)
	Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error
}

var (
	ErrInvalidUnitNumber   = repository.NewValidationError("unit_number", "invalid_unit_number")
	ErrDuplicateUnitNumber = repository.NewValidationError("unit_number", "duplicate_unit_number")
)
