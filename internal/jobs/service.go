// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/validate"
	"github.com/peerreview/journalhub/pkg/uuidv7"
)

const FieldName = "name"

// knownJobs is the closed set of job names the API accepts. An unknown
// name would sit on the queue forever, so it is rejected at enqueue time.
var knownJobs = map[string]bool{
	JobReputationInit:       true,
	JobNotificationDispatch: true,
}

type Service struct {
	repo   Repository
	queue  Queue
	logger *slog.Logger
}

func NewService(repo Repository, queue Queue, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		queue:  queue,
		logger: logger,
	}
}

// EnqueueJob records a queued job and pushes its envelope. The record is
// written before the push so a crash between the two leaves a visible
// queued record rather than an untracked envelope.
func (service *Service) EnqueueJob(context context.Context, name string, payload json.RawMessage) (*Job, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.Custom(FieldName, name != "" && !knownJobs[name], "unknown job name")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	job := &Job{
		ID:      uuidv7.Must(),
		Name:    name,
		Status:  StatusQueued,
		Payload: payload,
	}

	if err := service.repo.Create(context, job); err != nil {
		return nil, err
	}

	envelope := Envelope{ID: job.ID, Name: job.Name, Payload: job.Payload}
	if err := service.queue.Enqueue(context, envelope); err != nil {
		return nil, err
	}

	service.logger.Info("job_enqueued",
		slog.String("job_id", job.ID),
		slog.String("job_name", job.Name),
	)
	return job, nil
}

func (service *Service) GetJob(context context.Context, id string) (*Job, error) {
	return service.repo.Get(context, id)
}

func (service *Service) ListJobs(context context.Context, limit, offset int) ([]*Job, int, error) {
	return service.repo.List(context, limit, offset)
}

// CancelJob is a deliberate stub: the queue offers no removal contract.
func (service *Service) CancelJob(context context.Context, id string) error {
	return apperr.NotImplemented("Job cancellation")
}

// PauseJob is a deliberate stub, same as cancellation.
func (service *Service) PauseJob(context context.Context, id string) error {
	return apperr.NotImplemented("Job pause/resume")
}
