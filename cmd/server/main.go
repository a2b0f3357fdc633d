package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/huevitoia/chef/internal/api"
	"github.com/huevitoia/chef/internal/cache"
	"github.com/huevitoia/chef/internal/config"
	"github.com/huevitoia/chef/internal/conversation"
	"github.com/huevitoia/chef/internal/db"
	"github.com/huevitoia/chef/internal/logger"
	"github.com/huevitoia/chef/internal/metrics"
	"github.com/huevitoia/chef/internal/middleware"
	"github.com/huevitoia/chef/internal/sentry"
	"github.com/huevitoia/chef/internal/services/generation"
	"github.com/huevitoia/chef/internal/services/image"
	"github.com/huevitoia/chef/internal/services/recipes"
	"github.com/huevitoia/chef/internal/telemetry"
	"github.com/huevitoia/chef/internal/worker"
)

// parseOTLPHeaders splits "k1=v1,k2=v2" into a header map.
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
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, parseOTLPHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
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

	recipeStore := recipes.NewPostgresStore(pool)

	// Redis-backed session store
	redisClient, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	sessionTTL := time.Duration(cfg.Conversation.SessionTTLMinutes) * time.Minute
	sessions := conversation.NewStore(cache.NewRedisCache(redisClient, "chef:"), sessionTTL)

	// Asynq client for enqueuing save tasks
	asynqClient := worker.NewClient(cfg.RedisURL)
	defer asynqClient.Close()

	// Recipe generation
	provider := generation.NewProvider(cfg.Generation, cfg.GroqKey, cfg.OpenAIKey)
	var imageProvider image.Provider = image.NoopProvider{}
	if cfg.Generation.ImageEnabled {
		imageProvider = image.NewOpenAIProvider(cfg.OpenAIKey)
	}
	gateway := generation.NewGateway(provider, imageProvider)

	// API handlers
	apiServer := api.NewServer(cfg, sessions, gateway, recipeStore, asynqClient)

	// Router
	r := chi.NewRouter()

	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Use(sentry.HTTPMiddleware)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Chat routes work anonymously; a bearer token attaches ownership.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthMiddleware(cfg))
		r.Post("/api/chat", apiServer.HandleCreateSession)
		r.Get("/api/chat/{sessionID}", apiServer.HandleGetSession)
		r.Post("/api/chat/{sessionID}/message", apiServer.HandleMessage)
		r.Post("/api/chat/{sessionID}/reset", apiServer.HandleResetSession)
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))
		r.Get("/api/recipes", apiServer.HandleListRecipes)
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Starting server", "port", port)

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
