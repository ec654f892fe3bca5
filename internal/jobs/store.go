// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import "context"

// Repository persists job records.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, limit, offset int) ([]*Job, int, error)
	MarkRunning(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id string, status Status, lastError *string) error
}

// Queue moves job envelopes between the API and the worker.
type Queue interface {
	Enqueue(ctx context.Context, envelope Envelope) error

	// Dequeue blocks up to the queue's poll timeout. A timeout with no work
	// returns ok=false and a nil error so the worker loop can re-check its
	// context.
	Dequeue(ctx context.Context) (Envelope, bool, error)
}
