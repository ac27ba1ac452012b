package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr      string
	AuthJWTSecret string
	AuthJWTIssuer string

	LogLevel  string
	LogFormat string

	OtelEnabled       bool
	OTLPEndpoint      string
	OTLPProtocol      string
	OtelSamplingRatio float64

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// Load loads configuration from an optional estatehub.yaml, the .env file and
// the environment. Environment variables win.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("estatehub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/estatehub")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	_ = v.ReadInConfig()

	environment := strings.TrimSpace(v.GetString("ENVIRONMENT"))
	// Exporters default to on in production only, so local runs need no collector.
	otelEnabled := strings.EqualFold(environment, "production")
	if v.IsSet("OTEL_ENABLED") {
		otelEnabled = v.GetBool("OTEL_ENABLED")
	}

	return Config{
		AppName:           v.GetString("APP_SERVICE"),
		AppVersion:        v.GetString("APP_VERSION"),
		Environment:       environment,
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		AuthJWTSecret:     strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")),
		AuthJWTIssuer:     strings.TrimSpace(v.GetString("AUTH_JWT_ISSUER")),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		OtelEnabled:       otelEnabled,
		OTLPEndpoint:      strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPProtocol:      strings.ToLower(strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL"))),
		OtelSamplingRatio: v.GetFloat64("OTEL_SAMPLING_RATIO"),
		DBType:            strings.ToLower(v.GetString("DATABASE_TYPE")),
		DBHost:            v.GetString("DATABASE_HOST"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:         v.GetString("DATABASE_SSLMODE"),
		DBPath:            v.GetString("DATABASE_PATH"),
		DBMaxIdleConn:     v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:     v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime: v.GetInt("DATABASE_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime: v.GetInt("DATABASE_CONN_MAX_IDLE_TIME"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_SERVICE", "estatehub")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTEL_SAMPLING_RATIO", 0.1)
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "estatehub")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_PATH", "estatehub.db")
	v.SetDefault("DATABASE_MAX_IDLE_CONN", 10)
	v.SetDefault("DATABASE_MAX_OPEN_CONN", 50)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", 60)
}

// IsDevelopment reports whether the environment is a local or test one.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
