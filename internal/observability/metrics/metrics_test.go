package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsEstateLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("object", "unit"),
		attribute.String("estate_id", "456"),
		attribute.String("outcome", "allow"),
	)
	require.Len(t, attrs, 2)
	for _, attr := range attrs {
		assert.NotEqual(t, attribute.Key("estate_id"), attr.Key)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordAuthorization(context.Background(), "unit", "view", "allow")
	m.RecordReport(context.Background(), "estate_summary", time.Second)
	m.RecordReportWarning(context.Background(), "estate_summary", "collected_exceeds_expected")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordAuthorization(context.Background(), "fee", "create", "cross_tenant_access")
}

func TestHTTPMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewHTTPMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var counter *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "estatehub_http_requests_total" {
			counter = family
		}
	}
	require.NotNil(t, counter)
	require.Len(t, counter.GetMetric(), 1)
	assert.Equal(t, float64(2), counter.GetMetric()[0].GetCounter().GetValue())
}
