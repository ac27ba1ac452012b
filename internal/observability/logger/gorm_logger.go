package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig logs failures and slow queries. Missing rows are the
// normal outcome of a scoped lookup and stay out of the log.
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// GormLogger writes gorm output through the request-scoped zap logger, so
// queries carry the request id and actor of the call that issued them.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.write(ctx, zapcore.InfoLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.write(ctx, zapcore.WarnLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.write(ctx, zapcore.ErrorLevel, msg, zap.Any("data", data))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	level, ok := l.traceLevel(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("operation", operationFromSQL(sql)),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("elapsed", elapsed),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if l.isSlow(elapsed) {
		fields = append(fields, zap.Bool("slow", true))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.write(ctx, level, "sql", fields...)
}

// traceLevel picks the level for a finished statement, or reports that it
// should not be logged at all.
func (l *GormLogger) traceLevel(elapsed time.Duration, err error) (zapcore.Level, bool) {
	if l.cfg.Level <= gormlogger.Silent {
		return 0, false
	}
	if err != nil && !(l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound)) {
		return zapcore.ErrorLevel, l.cfg.Level >= gormlogger.Error
	}
	if l.isSlow(elapsed) {
		return zapcore.WarnLevel, l.cfg.Level >= gormlogger.Warn
	}
	return zapcore.DebugLevel, l.cfg.Level >= gormlogger.Info
}

func (l *GormLogger) isSlow(elapsed time.Duration) bool {
	return l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold
}

// ParamsFilter drops bound values; occupant details must not reach the logs.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *GormLogger) write(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	if ce := FromContext(ctx).Named("gorm").Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

// operationFromSQL returns the first statement keyword, looking through CTEs.
func operationFromSQL(sql string) string {
	for _, token := range strings.Fields(strings.ToUpper(sql)) {
		switch token = strings.Trim(token, "();"); token {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			return token
		}
	}
	return "UNKNOWN"
}

var _ gormlogger.Interface = (*GormLogger)(nil)
