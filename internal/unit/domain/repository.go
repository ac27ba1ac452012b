package domain

import (
	"context"
	"iter"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, unit *Unit) error
	FindByID(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) (*Unit, error)
	List(ctx context.Context, db *gorm.DB, scope repository.Scope, q repository.Query) (iter.Seq2[*Unit, error], error)
	Count(ctx context.Context, db *gorm.DB, scope repository.Scope, conds ...repository.Condition) (int64, error)
	Updates(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID, fields map[string]any) error
	// DeleteCascade removes the unit and its payments and detaches its tickets.
	DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error
}
