package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/survey-pdf-service/internal/config"
	"github.com/maxviazov/survey-pdf-service/internal/handler"
	"github.com/maxviazov/survey-pdf-service/internal/logger"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
	"github.com/maxviazov/survey-pdf-service/internal/repository/postgres"
	"github.com/maxviazov/survey-pdf-service/internal/repository/source"
	"github.com/maxviazov/survey-pdf-service/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := loadStore(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Record store loading failed")
	}

	docs := service.NewDocumentService(store, service.DocumentConfig{
		Root:          cfg.Documents.Root,
		APIKey:        cfg.Auth.APIKey,
		AllowedRegion: cfg.Documents.AllowedRegion,
	}, appLogger)

	engine, err := handler.NewEngine(appLogger, cfg.CORS)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ CORS configuration rejected")
	}
	handler.Register(engine, store, docs)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("root", cfg.Documents.Root).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("❌ HTTP server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// loadStore reads the configured record source once. The Postgres pool only lives for the load.
func loadStore(ctx context.Context, cfg *config.Config, l *zerolog.Logger) (*repository.MemoryStore, error) {
	kind := source.Kind(cfg.Records.Source, cfg.Records.Path)
	l.Info().Str("source", kind).Str("path", cfg.Records.Path).Msg("loading GUID records")

	if kind == source.KindPostgres {
		pool, err := repository.NewPool(ctx, cfg, l)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return repository.Load(ctx, postgres.NewRecordSource(pool, cfg.Records.Table), *l)
	}

	src, err := source.OpenFile(kind, cfg.Records.Path, cfg.Records.Sheet)
	if err != nil {
		return nil, err
	}
	return repository.Load(ctx, src, *l)
}
