package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	announcementdomain "github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	maintenancedomain "github.com/smallbiznis/estatehub/internal/maintenance/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"gorm.io/gorm"
)

var ordering = repository.Ordering{
	"name":       "name",
	"slug":       "slug",
	"type":       "type",
	"created_at": "created_at",
}

type repo struct {
	*repository.Store[domain.Estate]
}

func Provide() domain.Repository {
	// An estate is its own tenant, so the scope applies to its primary key.
	return &repo{Store: repository.NewStore[domain.Estate]("id", ordering)}
}

// owned lists children before parents so no foreign key is left dangling.
var owned = []any{
	&paymentdomain.Payment{},
	&maintenancedomain.Ticket{},
	&announcementdomain.Announcement{},
	&feedomain.Fee{},
	&unitdomain.Unit{},
}

func (r *repo) DeleteCascade(ctx context.Context, db *gorm.DB, scope repository.Scope, id snowflake.ID) error {
	if _, err := r.FindByID(ctx, db, scope, id); err != nil {
		return err
	}
	for _, model := range owned {
		if err := db.WithContext(ctx).Where("estate_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	return r.Delete(ctx, db, scope, id)
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Estate{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
