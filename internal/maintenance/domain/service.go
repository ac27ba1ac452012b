package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListTicketRequest struct {
	EstateID snowflake.ID
	UnitID   snowflake.ID
	Status   Status
	Category Category
	Search   string
	OrderBy  string
}

type CreateTicketRequest struct {
	EstateID    snowflake.ID
	UnitID      *snowflake.ID
	Title       string
	Description string
	Category    Category
}

type UpdateTicketRequest struct {
	Title       *string
	Description *string
	Category    *Category
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListTicketRequest) (iter.Seq2[*Ticket, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Ticket, error)
	Create(ctx context.Context, p identity.Principal, req CreateTicketRequest) (Ticket, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdateTicketRequest) (Ticket, error)
	Resolve(ctx context.Context, p identity.Principal, id snowflake.ID) (Ticket, error)
	Reopen(ctx context.Context, p identity.Principal, id snowflake.ID) (Ticket, error)
	Delete(ctx context.Context, p identity.Principal, id snowflake.ID) error
}

var (
	ErrInvalidTitle    = repository.NewValidationError("title", "invalid_title")
	ErrInvalidCategory = repository.NewValidationError("category", "invalid_category")
	ErrInvalidStatus   = repository.NewValidationError("status", "invalid_status")
	ErrUnitNotInEstate = repository.NewValidationError("unit_id", "unit_not_in_estate")
)
