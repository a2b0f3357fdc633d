package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/huevitoia/chef/internal/config"
	"github.com/huevitoia/chef/internal/db"
	"github.com/huevitoia/chef/internal/logger"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/sentry"
	"github.com/huevitoia/chef/internal/services/recipes"
	"github.com/huevitoia/chef/internal/telemetry"
	"github.com/huevitoia/chef/internal/worker"
)

func parseOTLPHeaders(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		if k, v, ok := strings.Cut(pair, "="); ok {
			headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return headers
}

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName+"-worker", cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, parseOTLPHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName+"-worker", cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	logger := logger.New(cfg.Env)
	slog.SetDefault(logger)

	// Database connection
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	saver := worker.NewRecipeSaver(recipes.NewPostgresStore(pool))

	// Asynq server
	srv := worker.NewServer(cfg.RedisURL)

	// Register handlers
	mux := asynq.NewServeMux()
	mux.Use(worker.SentryMiddleware)
	mux.Use(worker.OTelMiddleware)
	mux.HandleFunc(worker.TypeSaveRecipe, saver.HandleSaveRecipe)

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutting down worker...")
		srv.Shutdown()
	}()

	slog.Info("Starting worker", "redis", cfg.RedisURL)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
