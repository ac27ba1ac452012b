package unit

import (
	"github.com/smallbiznis/estatehub/internal/unit/repository"
	"github.com/smallbiznis/estatehub/internal/unit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("unit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
