package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, estate *Estate) error
	FindByID(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) (*Estate, error)
	List(ctx context.Context, db *gorm.DB, scope repository.Scope, q repository.Query) (iter.Seq2[*Estate, error], error)
	Updates(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID, fields map[string]any) error
	// DeleteCascade removes the estate and every row it owns.
	DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
}
