package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/services"
	"github.com/SscSPs/boutique_ops/internal/handlers"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/SscSPs/boutique_ops/internal/platform/config"
	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/SscSPs/boutique_ops/internal/platform/notify"
	"github.com/SscSPs/boutique_ops/internal/platform/redis"
	"github.com/SscSPs/boutique_ops/internal/repositories/database/pgsql"
	"github.com/SscSPs/boutique_ops/internal/utils"
	"github.com/SscSPs/boutique_ops/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Boutique Ops API
// @version 1.0
// @description Scheduling, targets, sales ledger, leaves and tasks for multi-boutique retail operations.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()

	var redisClient *redis.Client
	if cfg.RedisAddress != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		logger.Info("Redis connected", slog.String("address", cfg.RedisAddress))
	}

	var publisher notify.Publisher
	if cfg.PubSubProjectID != "" {
		publisher, err = notify.NewPubSubPublisher(ctx, cfg.PubSubProjectID, cfg.PubSubTopic, cfg.PubSubCredentialsJSON)
		if err != nil {
			logger.Error("Failed to create pubsub publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("PUBSUB_PROJECT_ID not set; notifications will only be logged")
	}
	notifier := notify.New(publisher, logger, m)
	defer notifier.Close()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient.Redis())
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, services.Collaborators{
		Metrics:  m,
		Redis:    redisClient,
		Notifier: notifier,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.PrometheusMiddleware(m))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Extras{
		Metrics: m,
		Limiter: rateLimiter,
		Posthog: posthogClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
	}
}
