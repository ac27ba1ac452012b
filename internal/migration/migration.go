package migration

import (
	"fmt"

	announcementdomain "github.com/smallbiznis/estatehub/internal/announcement/domain"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	maintenancedomain "github.com/smallbiznis/estatehub/internal/maintenance/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"gorm.io/gorm"
)

// Models lists every persisted entity, parents first.
func Models() []any {
	return []any{
		&estatedomain.Estate{},
		&unitdomain.Unit{},
		&feedomain.Fee{},
		&paymentdomain.Payment{},
		&maintenancedomain.Ticket{},
		&announcementdomain.Announcement{},
	}
}

// Run creates or extends the tables for all entities. It is a bootstrap, not a
// versioned migration history.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("migration database handle is required")
	}
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
