package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults double as the key registry: viper only unmarshals env-only keys it already knows.
var defaults = map[string]any{
	"app.name":             "survey-pdf-service",
	"app.env":              "prod",
	"app.port":             8000,
	"app.shutdown_timeout": 10 * time.Second,

	"logger.level":       "",
	"logger.format":      "",
	"logger.env":         "",
	"logger.with_caller": false,
	"logger.stacktrace":  false,

	"auth.api_key": "",

	"documents.root":           "",
	"documents.allowed_region": "andhrapradesh",

	"records.source": "",
	"records.path":   "",
	"records.sheet":  "",
	"records.table":  "survey_records",

	"postgres.host":               "localhost",
	"postgres.port":               5432,
	"postgres.user":               "",
	"postgres.password":           "",
	"postgres.db":                 "",
	"postgres.sslmode":            "disable",
	"postgres.max_conns":          2,
	"postgres.min_conns":          0,
	"postgres.max_conn_lifetime":  0,
	"postgres.max_conn_idle_time": 0,

	"cors.allowed_origins":   []string{"*"},
	"cors.allowed_methods":   []string{"*"},
	"cors.allowed_headers":   []string{"*"},
	"cors.expose_headers":    []string{"Content-Disposition", "Content-Length"},
	"cors.allow_credentials": true,
	"cors.max_age":           12 * time.Hour,
}

// legacyEnv keeps the variable names existing deployments already export.
var legacyEnv = map[string]string{
	"auth.api_key":   "API_KEY",
	"documents.root": "PDF_ROOT",
	"records.path":   "DATA_FILE",
	"app.port":       "PORT",
}

// Load reads .env (if present), then the optional YAML file at path, then APP_* environment
// variables, and validates the result. Environment always wins over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		canonical := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", legacy, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		// The file is optional: a bare environment is a complete configuration.
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not readable: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints plus the rules that span sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if strings.EqualFold(c.Records.Source, "postgres") && (c.Postgres.Host == "" || c.Postgres.DBName == "") {
		return errors.New("config validation error: postgres.host and postgres.db are required when records.source is postgres")
	}
	return nil
}
