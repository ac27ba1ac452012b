package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type ListAnnouncementRequest struct {
	EstateID snowflake.ID
	IsActive *bool
	Search   string
	OrderBy  string
}

// CreateAnnouncementRequest defaults EstateID to the author's estate.
type CreateAnnouncementRequest struct {
	EstateID snowflake.ID
	Title    string
	Message  string
}

type UpdateAnnouncementRequest struct {
	Title    *string
	Message  *string
	IsActive *bool
}

type Service interface {
	List(ctx context.Context, p identity.Principal, req ListAnnouncementRequest) (iter.Seq2[*Announcement, error], error)
	Get(ctx context.Context, p identity.Principal, id snowflake.ID) (Announcement, error)
	Create(ctx context.Context, p identity.Principal, req CreateAnnouncementRequest) (Announcement, error)
	Update(ctx context.Context, p identity.Principal, id snowflake.ID, req UpdateAnnouncementRequest) (Announcement, error)
	// Deactivate hides the announcement. Announcements are never hard-deleted.
	Deactivate(ctx context.Context, p identity.Principal, id snowflake.ID) (Announcement, error)
}

var (
	ErrInvalidTitle   = repository.NewValidationError("title", "invalid_title")
	ErrInvalidMessage = repository.NewValidationError("message", "invalid_message")
)
