// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package jobs runs named background work outside the request cycle.

A POST enqueues a job and returns its handle immediately; the worker
process consumes the Redis queue, executes the registered handler and
records status transitions in Postgres. The only read contract is "fetch
job by id" — cancellation and pause/resume endpoints exist but answer 501.
*/
package jobs

import (
	"encoding/json"
	"time"
)

// Status is the execution state of a job record.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Well-known job names.
const (
	// JobReputationInit recomputes a user's reputation from external
	// sources. The computation itself is pending an upstream API contract;
	// the handler currently records completion.
	JobReputationInit = "reputation.initialize"

	// JobNotificationDispatch renders a notification definition against a
	// context and delivers it.
	JobNotificationDispatch = "notification.dispatch"
)

// Job is one persisted background task.
type Job struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     Status          `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	LastError  *string         `json:"last_error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// Envelope is the wire form pushed onto the queue. The worker re-reads the
// authoritative record from Postgres; the envelope only carries enough to
// find and run it.
type Envelope struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
