package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, fee *Fee) error
	FindByID(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) (*Fee, error)
	List(ctx context.Context, db *gorm.DB, scope repository.Scope, q repository.Query) (iter.Seq2[*Fee, error], error)
	Updates(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID, fields map[string]any) error
	// DeleteCascade removes the fee and every payment recorded against it.
	DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error
}
