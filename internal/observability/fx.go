package observability

import (
	"github.com/smallbiznis/estatehub/internal/observability/logger"
	"github.com/smallbiznis/estatehub/internal/observability/metrics"
	"github.com/smallbiznis/estatehub/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module provides the zap logger, the global tracer and meter providers, the
// domain instruments and the Prometheus HTTP collectors.
var Module = fx.Module("observability",
	fx.Provide(LoadConfig),
	fx.Provide(
		Config.logger,
		Config.tracing,
		Config.metrics,
	),
	fx.Provide(logger.New),
	fx.Provide(tracing.NewProvider),
	fx.Provide(metrics.NewProvider, metrics.New, metrics.NewHTTPMetrics),
	// Nothing else depends on the tracer provider; force its construction so
	// the global provider is installed before the first request.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)
