package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ish/pocketledger/internal/adapter/http"
	"github.com/ish/pocketledger/internal/adapter/http/handler"
	"github.com/ish/pocketledger/internal/adapter/parser"
	postgresRepo "github.com/ish/pocketledger/internal/adapter/repository/postgres"
	redisRepo "github.com/ish/pocketledger/internal/adapter/repository/redis"
	"github.com/ish/pocketledger/internal/infrastructure/config"
	"github.com/ish/pocketledger/internal/infrastructure/logger"
	"github.com/ish/pocketledger/internal/infrastructure/metrics"
	"github.com/ish/pocketledger/internal/infrastructure/postgres"
	"github.com/ish/pocketledger/internal/infrastructure/redis"
	"github.com/ish/pocketledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories and stores
	txRepo := postgresRepo.NewTransactionRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	sessionStore := redisRepo.NewSessionStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Free-text parsing: Gemini when a key is configured, rules otherwise.
	textParser := parser.NewGeminiParser(cfg.GeminiAPIKey, cfg.GeminiModel, parser.NewRulesParser(), appLogger)

	// Metrics
	appMetrics := metrics.New()

	// Initialize use cases
	txUC := usecase.NewTransactionUseCase(txRepo, cache, appMetrics)
	quickAddUC := usecase.NewQuickAddUseCase(txRepo, textParser, idGen, cache, appMetrics)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(txUC)
	quickAddHandler := handler.NewQuickAddHandler(quickAddUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		QuickAddHandler:    quickAddHandler,
		HealthHandler:      healthHandler,
		SessionResolver:    sessionStore,
		SessionCookieName:  cfg.SessionCookieName,
		IdempotencyStore:   idempotencyStore,
		QuickAddRateLimit:  cfg.QuickAddRateLimit,
		QuickAddRateBurst:  cfg.QuickAddRateBurst,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
