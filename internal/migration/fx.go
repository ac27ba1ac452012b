package migration

import (
	"github.com/smallbiznis/estatehub/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module migrates on start outside production, where `estatehub migrate` is
// run explicitly instead.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.IsProduction() {
			return nil
		}
		log.Info("running bootstrap migration")
		return Run(conn)
	}),
)
