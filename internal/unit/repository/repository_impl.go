package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	maintenancedomain "github.com/smallbiznis/estatehub/internal/maintenance/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

var ordering = repository.Ordering{
	"unit_number": "unit_number",
	"block":       "block",
	"is_occupied": "is_occupied",
	"created_at":  "created_at",
}

type repo struct {
	*repository.Store[domain.Unit]
}

func Provide() domain.Repository {
	return &repo{Store: repository.NewStore[domain.Unit]("estate_id", ordering)}
}

func (r *repo) DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error {
	if _, err := r.FindByID(ctx, db, scope, id); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where("unit_id = ?", id).Delete(&paymentdomain.Payment{}).Error; err != nil {
		return err
	}
	err := db.WithContext(ctx).Model(&maintenancedomain.Ticket{}).
		Where("unit_id = ?", id).
		Update("unit_id", nil).Error
	if err != nil {
		return err
	}
	return r.Delete(ctx, db, scope, id)
}
