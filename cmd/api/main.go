// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

// Command api is the entry point for the JournalHub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/peerreview/journalhub/internal/api"
	"github.com/peerreview/journalhub/internal/core/field"
	"github.com/peerreview/journalhub/internal/core/journal"
	"github.com/peerreview/journalhub/internal/core/paper"
	"github.com/peerreview/journalhub/internal/core/review"
	"github.com/peerreview/journalhub/internal/feature"
	"github.com/peerreview/journalhub/internal/jobs"
	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/config"
	"github.com/peerreview/journalhub/internal/platform/constants"
	"github.com/peerreview/journalhub/internal/platform/migration"
	pgstore "github.com/peerreview/journalhub/internal/platform/postgres"
	redisstore "github.com/peerreview/journalhub/internal/platform/redis"
	"github.com/peerreview/journalhub/internal/platform/sec"
	"github.com/peerreview/journalhub/internal/platform/storage"
	"github.com/peerreview/journalhub/internal/users/auth"
)

func main() {
	// Initialize the logger first so that startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", "journalhub"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "journalhub"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Startup context with a deadline so misconfiguration fails fast
	// instead of hanging on a dead dependency.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	jwtService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	objectStore, err := storage.New(startupCtx, cfg)
	must(log, err, "initialize object storage")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// Domain wiring, dependency order: jobs and permissions first, then the
	// slices that consume them.
	jobService := jobs.NewService(jobs.NewPostgresRepository(pool), jobs.NewRedisQueue(rdb), log)
	featureService := feature.NewService(feature.NewPostgresRepository(pool), log)
	notifier := jobs.NewNotifyEnqueuer(jobService, featureService, log)

	permService := perm.NewService(perm.NewPostgresRepository(pool), log)

	journalRepository := journal.NewPostgresRepository(pool)
	journalService := journal.NewService(journalRepository, notifier, log)

	paperService := paper.NewService(paper.NewPostgresRepository(pool), permService, objectStore, journalRepository, log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), permService, log)
	fieldService := field.NewService(field.NewPostgresRepository(pool), log)

	authService := auth.NewService(
		auth.NewPostgresUserRepository(pool),
		auth.NewPostgresSessionRepository(pool),
		auth.NewRedisTokenRepository(rdb, constants.RedisPrefixResetToken),
		auth.NewRedisTokenRepository(rdb, constants.RedisPrefixVerifyToken),
		jwtService,
		log,
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Field:     field.NewHandler(fieldService),
		Paper:     paper.NewHandler(paperService),
		Review:    review.NewHandler(reviewService),
		Journal:   journal.NewHandler(journalService),
		Feature:   feature.NewHandler(featureService),
		Jobs:      jobs.NewHandler(jobService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtService, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
