// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/peerreview/journalhub/pkg/pointer"
	"github.com/peerreview/journalhub/pkg/reqtrack"
)

// JobHandler executes one job kind. A returned error marks the record failed
// with the error message; a panic is caught and treated the same way.
type JobHandler func(ctx context.Context, payload json.RawMessage) error

// Worker drains the queue and runs registered handlers. Each execution is
// mirrored into an in-process tracker so the worker can report how many
// runs are in flight and sweep finished records between polls.
type Worker struct {
	repo     Repository
	queue    Queue
	handlers map[string]JobHandler
	tracker  *reqtrack.Tracker
	logger   *slog.Logger
}

func NewWorker(repo Repository, queue Queue, logger *slog.Logger) *Worker {
	return &Worker{
		repo:     repo,
		queue:    queue,
		handlers: map[string]JobHandler{},
		tracker:  reqtrack.New(),
		logger:   logger,
	}
}

// Register binds a handler to a job name. Registration happens before Run;
// the map is not guarded for concurrent mutation.
func (worker *Worker) Register(name string, handler JobHandler) {
	worker.handlers[name] = handler
}

// Run consumes the queue until the context is cancelled. Each blocking pop
// is bounded by the queue's poll timeout, so cancellation is observed
// within one poll interval.
func (worker *Worker) Run(ctx context.Context) error {
	worker.logger.Info("worker_started", slog.Int("handlers", len(worker.handlers)))

	for {
		select {
		case <-ctx.Done():
			worker.logger.Info("worker_stopped")
			return ctx.Err()
		default:
		}

		envelope, ok, err := worker.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				worker.logger.Info("worker_stopped")
				return ctx.Err()
			}
			worker.logger.Error("dequeue_failed", slog.Any("error", err))
			continue
		}
		if !ok {
			continue
		}

		worker.process(ctx, envelope)
	}
}

func (worker *Worker) process(ctx context.Context, envelope Envelope) {
	logger := worker.logger.With(
		slog.String("job_id", envelope.ID),
		slog.String("job_name", envelope.Name),
	)

	if err := worker.repo.MarkRunning(ctx, envelope.ID); err != nil {
		// Already finished or unknown: the envelope is stale, drop it.
		logger.Warn("job_not_runnable", slog.Any("error", err))
		return
	}

	trackID := worker.tracker.MakeRequest(envelope.Name, envelope.ID)
	defer func() {
		worker.tracker.CleanupRequest(trackID)
		worker.tracker.Sweep()
	}()

	err := worker.execute(ctx, envelope)
	if err != nil {
		_ = worker.tracker.FailRequest(trackID, err)
		logger.Error("job_failed", slog.Any("error", err))
		if markErr := worker.repo.MarkFinished(ctx, envelope.ID, StatusFailed, pointer.To(err.Error())); markErr != nil {
			logger.Error("job_status_update_failed", slog.Any("error", markErr))
		}
		return
	}

	_ = worker.tracker.CompleteRequest(trackID, 200, nil)
	if markErr := worker.repo.MarkFinished(ctx, envelope.ID, StatusCompleted, nil); markErr != nil {
		logger.Error("job_status_update_failed", slog.Any("error", markErr))
		return
	}
	logger.Info("job_completed")
}

func (worker *Worker) execute(ctx context.Context, envelope Envelope) (err error) {
	handler, ok := worker.handlers[envelope.Name]
	if !ok {
		return fmt.Errorf("jobs: no handler registered for %q", envelope.Name)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("jobs: handler panicked: %v", recovered)
		}
	}()

	return handler(ctx, envelope.Payload)
}
