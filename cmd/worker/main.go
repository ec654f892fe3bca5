// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

// Command worker is the background job runner.
//
// It drains the Redis job queue and executes the registered handlers:
// reputation initialization and notification dispatch. The worker shares
// the API server's configuration and storage wiring but serves no HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peerreview/journalhub/internal/jobs"
	"github.com/peerreview/journalhub/internal/notify"
	"github.com/peerreview/journalhub/internal/platform/config"
	"github.com/peerreview/journalhub/internal/platform/constants"
	pgstore "github.com/peerreview/journalhub/internal/platform/postgres"
	redisstore "github.com/peerreview/journalhub/internal/platform/redis"
)

func main() {
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", "journalhub-worker"))
	slog.SetDefault(log)

	log.Info("worker_initializing")

	cfg, err := config.Load()
	must(log, err, "load configuration")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	// The queue client needs a read timeout wider than the blocking pop.
	rdb, err := redisstore.NewQueueClient(startupCtx, cfg.RedisURL, constants.JobPollTimeout, log)
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	registry, err := notify.NewRegistry(notify.Catalog())
	must(log, err, "build notification registry")

	repo := jobs.NewPostgresRepository(pool)
	worker := jobs.NewWorker(repo, jobs.NewRedisQueue(rdb), log)

	worker.Register(jobs.JobReputationInit, reputationInitHandler(log))
	worker.Register(jobs.JobNotificationDispatch, notificationDispatchHandler(registry, cfg.NotificationHost, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-quit
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("worker error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("worker stopped cleanly")
}

// reputationInitHandler seeds a reputation baseline for a new account.
// The heavy scoring model lives elsewhere; the job records the request so
// the pipeline is observable end to end.
func reputationInitHandler(log *slog.Logger) jobs.JobHandler {
	type payload struct {
		UserID string `json:"user_id"`
	}

	return func(ctx context.Context, raw json.RawMessage) error {
		var input payload
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("reputation payload: %w", err)
		}

		log.Info("reputation_initialized", slog.String("user_id", input.UserID))
		return nil
	}
}

// notificationDispatchHandler renders a queued notification and hands it
// to delivery. Email transport is not wired yet; the rendered message is
// logged so staging environments can inspect exactly what would be sent.
func notificationDispatchHandler(registry *notify.Registry, host string, log *slog.Logger) jobs.JobHandler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var dispatch notify.Dispatch
		if err := json.Unmarshal(raw, &dispatch); err != nil {
			return fmt.Errorf("dispatch payload: %w", err)
		}
		if dispatch.Context != nil && dispatch.Context.Host == "" {
			dispatch.Context.Host = host
		}

		message, err := registry.Render(dispatch.Key, dispatch.Context)
		if message.Key == "" {
			return fmt.Errorf("render %q: %w", dispatch.Key, err)
		}
		if err != nil {
			// Facet failures degrade the message, they do not block it.
			log.Warn("notification_facet_failed", slog.String("key", dispatch.Key), slog.Any("error", err))
		}

		log.Info("notification_dispatched",
			slog.String("key", message.Key),
			slog.String("recipient", dispatch.Recipient),
			slog.String("subject", message.EmailSubject),
			slog.String("text", message.Text),
			slog.String("path", message.Path),
		)
		return nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
