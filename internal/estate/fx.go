package estate

import (
	"github.com/smallbiznis/estatehub/internal/estate/repository"
	"github.com/smallbiznis/estatehub/internal/estate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
