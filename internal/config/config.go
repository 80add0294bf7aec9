package config

import (
	"time"

	"github.com/maxviazov/survey-pdf-service/internal/logger"
)

type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Auth      AuthConfig          `mapstructure:"auth"`
	Documents DocumentsConfig     `mapstructure:"documents"`
	Records   RecordsConfig       `mapstructure:"records"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	CORS      CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Env             string        `mapstructure:"env"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// AuthConfig holds the shared secret callers pass as api_key.
// An empty key is accepted here and makes the service refuse every document request.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type DocumentsConfig struct {
	Root          string `mapstructure:"root" validate:"required"`
	AllowedRegion string `mapstructure:"allowed_region" validate:"required"`
}

type RecordsConfig struct {
	Source string `mapstructure:"source" validate:"omitempty,oneof=xlsx csv postgres"`
	Path   string `mapstructure:"path" validate:"required_unless=Source postgres"`
	Sheet  string `mapstructure:"sheet"`
	Table  string `mapstructure:"table"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"min=0,max=65535"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"db"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxConns        int32  `mapstructure:"max_conns"`
	MinConns        int32  `mapstructure:"min_conns"`
	MaxConnLifetime int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime int    `mapstructure:"max_conn_idle_time"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	ExposeHeaders    []string      `mapstructure:"expose_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}
