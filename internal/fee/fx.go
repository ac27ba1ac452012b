package fee

import (
	"github.com/smallbiznis/estatehub/internal/fee/repository"
	"github.com/smallbiznis/estatehub/internal/fee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
