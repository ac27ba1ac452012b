package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, announcement *Announcement) error
	FindByID(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) (*Announcement, error)
	List(ctx context.Context, db *gorm.DB, scope repository.Scope, q repository.Query) (iter.Seq2[*Announcement, error], error)
	Updates(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID, fields map[string]any) error
}
