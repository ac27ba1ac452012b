package reporting

import (
	"github.com/smallbiznis/estatehub/internal/reporting/export"
	"github.com/smallbiznis/estatehub/internal/reporting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reporting.service",
	fx.Provide(service.New),
	fx.Provide(export.NewGenerator),
)
