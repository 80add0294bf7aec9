package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string         `mapstructure:"level" json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format         string         `mapstructure:"format" json:"format,omitempty" validate:"oneof=json console"`
	OutputTarget   string         `mapstructure:"output_target" json:"outputTarget,omitempty" validate:"oneof=stdout stderr"`
	FilePath       string         `mapstructure:"file_path" json:"filePath,omitempty"`
	TimeField      string         `mapstructure:"time_field" json:"timeField,omitempty"`
	TimeFormat     string         `mapstructure:"time_format" json:"timeFormat,omitempty"`
	ServiceName    string         `mapstructure:"service_name" json:"serviceName,omitempty"`
	ServiceVersion string         `mapstructure:"service_version" json:"serviceVersion,omitempty"`
	Env            string         `mapstructure:"env" json:"env,omitempty" validate:"oneof=dev staging prod"`
	WithCaller     bool           `mapstructure:"with_caller" json:"withCaller,omitempty"`
	Stacktrace     bool           `mapstructure:"stacktrace" json:"stacktrace,omitempty"`
	Fields         map[string]any `mapstructure:"fields" json:"fields,omitempty"`
}

// New builds the process logger. Production-like environments get JSON, dev gets the console
// writer; FilePath, when set, receives a copy of every line.
func New(cfg *LoggerConfig) (logger zerolog.Logger, err error) {
	cfg.setDefaults()

	if err = validator.New().Struct(cfg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFormat(cfg.TimeFormat)

	var out io.Writer = os.Stdout
	if cfg.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}

	// a broken log file must not keep the service from starting; it is reported once the logger exists
	var fileErr error
	if cfg.FilePath != "" {
		var file *os.File
		if fileErr = os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); fileErr == nil {
			file, fileErr = os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		}
		if fileErr == nil {
			out = zerolog.MultiLevelWriter(out, file)
		}
	}

	logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if cfg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("file_path", cfg.FilePath).Msg("log file unavailable; logging to output target only")
	}
	return logger, nil
}

// timeFormat maps the config shorthands onto zerolog's field formats.
func timeFormat(name string) string {
	switch name {
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	case "rfc3339":
		return "2006-01-02T15:04:05Z07:00"
	case "rfc3339nano":
		return "2006-01-02T15:04:05.999999999Z07:00"
	default:
		return name
	}
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}

	// level and format defaults depend on environment
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "survey-pdf-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
}
