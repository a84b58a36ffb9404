package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fair-wager-core/config"
	httpHandler "fair-wager-core/internal/adapter/http/handler"
	pgStorage "fair-wager-core/internal/adapter/storage/postgres"
	redisStorage "fair-wager-core/internal/adapter/storage/redis"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/internal/service"
	"fair-wager-core/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Fair Wager Core")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	journalRepo := pgStorage.NewJournalRepo(pool)
	statsRepo := pgStorage.NewStatsRepo(pool)
	seedRepo := pgStorage.NewSeedRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis adapters
	locker := redisStorage.NewAccountLock(rdb, cfg.Lock, log)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	events := redisStorage.NewEventPublisher(rdb, log)

	// Initialize business services
	ledgerSvc := service.NewLedgerService(
		walletRepo,
		journalRepo,
		statsRepo,
		transactor,
		locker,
		idempotencyCache,
		events,
		cfg.Lock,
		log,
	)
	fairnessSvc := service.NewFairnessService(cfg.Fairness, log)
	seedSvc := service.NewSeedService(seedRepo, transactor, locker, cfg.Lock, log)
	rateSvc := service.NewRateService(map[string]decimal.Decimal{
		"USD":  decimal.NewFromInt(1),
		"USDT": decimal.NewFromInt(1),
	}, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		FairnessSvc:    fairnessSvc,
		SeedSvc:        seedSvc,
		RateSvc:        rateSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
