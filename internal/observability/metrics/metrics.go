package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

const exportInterval = 10 * time.Second

// Metrics exposes application-level instruments. A nil *Metrics records nothing.
type Metrics struct {
	authorizationDecisions metric.Int64Counter
	reportsGenerated       metric.Int64Counter
	reportWarnings         metric.Int64Counter
	reportDuration         metric.Float64Histogram
}

// NewProvider installs the global meter provider. Disabled telemetry gets a
// no-op provider so instruments can still be created.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, fmt.Errorf("metrics exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(provider)
	lc.Append(fx.Hook{OnStop: provider.Shutdown})

	log.Info("metrics exporter started",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "estatehub"
	}
	meter := provider.Meter(name)

	decisions, err := meter.Int64Counter("estatehub_authorization_decisions_total")
	if err != nil {
		return nil, err
	}
	reports, err := meter.Int64Counter("estatehub_reports_generated_total")
	if err != nil {
		return nil, err
	}
	warnings, err := meter.Int64Counter("estatehub_report_warnings_total")
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("estatehub_report_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		authorizationDecisions: decisions,
		reportsGenerated:       reports,
		reportWarnings:         warnings,
		reportDuration:         duration,
	}, nil
}

// RecordAuthorization counts guard decisions by object, verb and outcome.
func (m *Metrics) RecordAuthorization(ctx context.Context, object, verb, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("object", strings.TrimSpace(object)),
		attribute.String("verb", strings.TrimSpace(verb)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.authorizationDecisions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReport counts a generated report and its duration.
func (m *Metrics) RecordReport(ctx context.Context, report string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("report", strings.TrimSpace(report)))
	m.reportsGenerated.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.reportDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordReportWarning(ctx context.Context, report, code string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("report", strings.TrimSpace(report)),
		attribute.String("warning", strings.TrimSpace(code)),
	)
	m.reportWarnings.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch normalized := strings.ToLower(strings.TrimSpace(protocol)); normalized {
	case "http", "http/protobuf":
		var opts []otlpmetrichttp.Option
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "", "grpc", "grpc/protobuf":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", normalized)
	}
}

// Estate ids are deliberately absent: one series per estate would grow
// without bound.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"object":      {},
	"verb":        {},
	"outcome":     {},
	"report":      {},
	"warning":     {},
	"route":       {},
	"method":      {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
