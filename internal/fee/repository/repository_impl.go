package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/fee/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

var ordering = repository.Ordering{
	"name":       "name",
	"amount":     "amount",
	"due_day":    "due_day",
	"frequency":  "frequency",
	"created_at": "created_at",
}

type repo struct {
	*repository.Store[domain.Fee]
}

func Provide() domain.Repository {
	return &repo{Store: repository.NewStore[domain.Fee]("estate_id", ordering)}
}

func (r *repo) DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error {
	if _, err := r.FindByID(ctx, db, scope, id); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("fee_id = ?", id).Delete(&paymentdomain.Payment{}).Error; err != nil {
		return err
	}
	return r.Delete(ctx, db, scope, id)
}
