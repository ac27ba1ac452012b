package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	obscontext "github.com/smallbiznis/estatehub/internal/observability/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const RequestIDHeader = "X-Request-Id"

// MiddlewareConfig controls request logging.
type MiddlewareConfig struct {
	// Debug attaches the raw handler error to the log entry.
	Debug bool
	// ErrorClassifier maps a handler error to (type, code) for the entry.
	ErrorClassifier func(err error) (string, string)
	// QuietRoutes are logged at debug level. Defaults to /health and /metrics.
	QuietRoutes []string
}

// GinMiddleware assigns a request id and writes one entry per request once the
// handler chain has finished. Actor fields are taken from the final request
// context, so requests rejected before authentication are logged without them.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	quiet := map[string]struct{}{"/health": {}, "/metrics": {}}
	if len(cfg.QuietRoutes) > 0 {
		quiet = make(map[string]struct{}, len(cfg.QuietRoutes))
		for _, route := range cfg.QuietRoutes {
			quiet[route] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(obscontext.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		route := c.FullPath()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes_out", max(c.Writer.Size(), 0)),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, errorFields(cfg, lastErr.Err)...)
		}

		level := zapcore.InfoLevel
		if _, ok := quiet[route]; ok {
			level = zapcore.DebugLevel
		} else if status >= http.StatusInternalServerError {
			level = zapcore.ErrorLevel
		} else if status >= http.StatusBadRequest {
			level = zapcore.WarnLevel
		}
		FromContext(c.Request.Context()).Log(level, "http request", fields...)
	}
}

func errorFields(cfg MiddlewareConfig, err error) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if cfg.ErrorClassifier != nil {
		errorType, errorCode := cfg.ErrorClassifier(err)
		fields = append(fields, zap.String("error_type", errorType), zap.String("error_code", errorCode))
	}
	if cfg.Debug {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
