package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/survey-pdf-service/internal/config"
)

// NewPool opens the Postgres pool used when records live in a database table.
// The pool is only needed while the store loads; callers close it right after.
func NewPool(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	pg := cfg.Postgres

	// url.URL takes care of escaping credentials.
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", pg.Host, pg.Port),
		Path:   pg.DBName,
	}
	if pg.User != "" || pg.Password != "" {
		u.User = url.UserPassword(pg.User, pg.Password)
	}
	q := u.Query()
	if pg.SSLMode != "" {
		q.Set("sslmode", pg.SSLMode)
	}
	u.RawQuery = q.Encode()

	poolConfig, err := pgxpool.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(*logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}

	if pg.MaxConns > 0 {
		poolConfig.MaxConns = pg.MaxConns
	}
	if pg.MinConns > 0 {
		poolConfig.MinConns = pg.MinConns
	}
	if pg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(pg.MaxConnLifetime) * time.Second
	}
	if pg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(pg.MaxConnIdleTime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: create postgres pool: %v", ErrSourceUnavailable, err)
	}

	// Bounded ping so a dead database doesn't hang startup.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", ErrSourceUnavailable, err)
	}

	logger.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("user", pg.User).
		Str("db", pg.DBName).
		Msg("Successfully connected to PostgreSQL")

	return pool, nil
}

func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch {
	case l <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case l <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case l <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case l <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
