// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

// fakeRepository records jobs and their status transitions in memory.
type fakeRepository struct {
	jobs map[string]*Job
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{jobs: map[string]*Job{}}
}

func (fake *fakeRepository) Create(_ context.Context, job *Job) error {
	copied := *job
	fake.jobs[job.ID] = &copied
	return nil
}

func (fake *fakeRepository) Get(_ context.Context, id string) (*Job, error) {
	job, ok := fake.jobs[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (fake *fakeRepository) List(_ context.Context, _, _ int) ([]*Job, int, error) {
	var out []*Job
	for _, job := range fake.jobs {
		out = append(out, job)
	}
	return out, len(out), nil
}

func (fake *fakeRepository) MarkRunning(_ context.Context, id string) error {
	job, ok := fake.jobs[id]
	if !ok || job.Status != StatusQueued {
		return dberr.ErrNotFound
	}
	job.Status = StatusRunning
	return nil
}

func (fake *fakeRepository) MarkFinished(_ context.Context, id string, status Status, lastError *string) error {
	job, ok := fake.jobs[id]
	if !ok {
		return dberr.ErrNotFound
	}
	job.Status = status
	job.LastError = lastError
	return nil
}

// fakeQueue is an in-memory FIFO.
type fakeQueue struct {
	envelopes []Envelope
}

func (fake *fakeQueue) Enqueue(_ context.Context, envelope Envelope) error {
	fake.envelopes = append(fake.envelopes, envelope)
	return nil
}

func (fake *fakeQueue) Dequeue(_ context.Context) (Envelope, bool, error) {
	if len(fake.envelopes) == 0 {
		return Envelope{}, false, nil
	}
	envelope := fake.envelopes[0]
	fake.envelopes = fake.envelopes[1:]
	return envelope, true, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_EnqueueJob verifies enqueueing creates a queued record and a
matching envelope, and the handle comes back immediately.
*/
func TestService_EnqueueJob(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	service := NewService(repo, queue, discardLogger())

	payload := json.RawMessage(`{"user_id":"u1"}`)
	job, err := service.EnqueueJob(context.Background(), JobReputationInit, payload)
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, StatusQueued, job.Status)

	stored, err := service.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobReputationInit, stored.Name)

	require.Len(t, queue.envelopes, 1)
	assert.Equal(t, job.ID, queue.envelopes[0].ID)
	assert.Equal(t, payload, queue.envelopes[0].Payload)
}

func TestService_EnqueueJob_RejectsUnknownName(t *testing.T) {
	service := NewService(newFakeRepository(), &fakeQueue{}, discardLogger())

	_, err := service.EnqueueJob(context.Background(), "reputation.destroy", nil)
	require.Error(t, err)

	_, err = service.EnqueueJob(context.Background(), "", nil)
	require.Error(t, err)
}

/*
TestService_CancelAndPause_NotImplemented pins the deliberate 501 contract
of the job lifecycle stubs.
*/
func TestService_CancelAndPause_NotImplemented(t *testing.T) {
	service := NewService(newFakeRepository(), &fakeQueue{}, discardLogger())

	for _, err := range []error{
		service.CancelJob(context.Background(), "some-id"),
		service.PauseJob(context.Background(), "some-id"),
	} {
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotImplemented, appErr.HTTPStatus)
	}
}

// drainOnce pops and processes a single envelope through the worker.
func drainOnce(t *testing.T, worker *Worker, queue *fakeQueue) {
	t.Helper()
	envelope, ok, err := queue.Dequeue(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	worker.process(context.Background(), envelope)
}

/*
TestWorker_ProcessCompletesJob runs a registered handler and checks the
record ends completed with the payload delivered intact.
*/
func TestWorker_ProcessCompletesJob(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	service := NewService(repo, queue, discardLogger())

	var received json.RawMessage
	worker := NewWorker(repo, queue, discardLogger())
	worker.Register(JobReputationInit, func(_ context.Context, payload json.RawMessage) error {
		received = payload
		return nil
	})

	job, err := service.EnqueueJob(context.Background(), JobReputationInit, json.RawMessage(`{"user_id":"u9"}`))
	require.NoError(t, err)

	drainOnce(t, worker, queue)

	stored, err := repo.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Nil(t, stored.LastError)
	assert.JSONEq(t, `{"user_id":"u9"}`, string(received))
}

func TestWorker_ProcessRecordsFailure(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	service := NewService(repo, queue, discardLogger())

	worker := NewWorker(repo, queue, discardLogger())
	worker.Register(JobReputationInit, func(_ context.Context, _ json.RawMessage) error {
		return errors.New("upstream API unreachable")
	})

	job, err := service.EnqueueJob(context.Background(), JobReputationInit, nil)
	require.NoError(t, err)

	drainOnce(t, worker, queue)

	stored, err := repo.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, stored.Status)
	require.NotNil(t, stored.LastError)
	assert.Equal(t, "upstream API unreachable", *stored.LastError)
}

/*
TestWorker_ProcessRecoversPanic: a panicking handler must not take the
worker down; the job fails with the panic text.
*/
func TestWorker_ProcessRecoversPanic(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	service := NewService(repo, queue, discardLogger())

	worker := NewWorker(repo, queue, discardLogger())
	worker.Register(JobReputationInit, func(_ context.Context, _ json.RawMessage) error {
		panic("nil map write")
	})

	job, err := service.EnqueueJob(context.Background(), JobReputationInit, nil)
	require.NoError(t, err)

	drainOnce(t, worker, queue)

	stored, err := repo.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, stored.Status)
	require.NotNil(t, stored.LastError)
	assert.Contains(t, *stored.LastError, "panicked")
}

/*
TestWorker_StaleEnvelopeDropped: an envelope whose record is no longer
queued (already finished) is dropped without rerunning the handler.
*/
func TestWorker_StaleEnvelopeDropped(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	service := NewService(repo, queue, discardLogger())

	calls := 0
	worker := NewWorker(repo, queue, discardLogger())
	worker.Register(JobReputationInit, func(_ context.Context, _ json.RawMessage) error {
		calls++
		return nil
	})

	job, err := service.EnqueueJob(context.Background(), JobReputationInit, nil)
	require.NoError(t, err)
	require.NoError(t, repo.MarkFinished(context.Background(), job.ID, StatusCompleted, nil))

	drainOnce(t, worker, queue)
	assert.Zero(t, calls)
}

// fakeFlags switches named flags on and off.
type fakeFlags struct{ enabled map[string]bool }

func (fake *fakeFlags) Enabled(_ context.Context, name string) bool {
	return fake.enabled[name]
}

/*
TestNotifyEnqueuer_PauseFlag: dispatch jobs are enqueued while the pause
flag is off and suppressed without error while it is on.
*/
func TestNotifyEnqueuer_PauseFlag(t *testing.T) {
	repo := newFakeRepository()
	queue := &fakeQueue{}
	flags := &fakeFlags{enabled: map[string]bool{}}
	enqueuer := NewNotifyEnqueuer(NewService(repo, queue, discardLogger()), flags, discardLogger())

	require.NoError(t, enqueuer.Notify(context.Background(), "user-1", "author.submission.decision", nil))
	require.Len(t, queue.envelopes, 1)
	assert.Equal(t, JobNotificationDispatch, queue.envelopes[0].Name)

	flags.enabled[FlagNotificationsPaused] = true
	require.NoError(t, enqueuer.Notify(context.Background(), "user-1", "author.submission.decision", nil))
	assert.Len(t, queue.envelopes, 1)
}
