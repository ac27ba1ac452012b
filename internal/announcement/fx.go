package announcement

import (
	"github.com/smallbiznis/estatehub/internal/announcement/repository"
	"github.com/smallbiznis/estatehub/internal/announcement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("announcement.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
