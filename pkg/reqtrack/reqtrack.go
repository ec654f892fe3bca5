// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package reqtrack implements the shared request-tracking state machine used by
API consumers to correlate asynchronous calls with their outcomes.

Every tracked request moves through a strict lifecycle:

	pending → fulfilled | failed

Terminal states never regress. Removal is decoupled from completion: a
consumer first marks a record for cleanup, and a later [Tracker.Sweep] pass
physically deletes it. The two-phase reclamation means a consumer that
releases a record and immediately re-acquires it within the same epoch never
observes the record disappearing underneath it.

# Identity

Two consumers tracking the "same" logical resource get independent ids and
independent lifecycles. De-duplication happens only by explicit id reuse,
never by endpoint comparison.
*/
package reqtrack

import (
	"errors"
	"sync"
	"time"

	"github.com/peerreview/journalhub/pkg/uuidv7"
)

// State is the lifecycle position of a tracked request.
type State string

const (
	// StatePending marks a call that is in flight.
	StatePending State = "pending"

	// StateFulfilled marks a call that completed successfully. Terminal.
	StateFulfilled State = "fulfilled"

	// StateFailed marks a call that completed with an error. Terminal.
	StateFailed State = "failed"
)

var (
	// ErrUnknownRequest is returned when the id does not match a live record.
	ErrUnknownRequest = errors.New("reqtrack: unknown request id")

	// ErrNotPending is returned when a terminal transition is attempted on a
	// record that already left the pending state.
	ErrNotPending = errors.New("reqtrack: request is not pending")
)

// HTTPError is a failure shape that carries only an HTTP status code.
//
// Callers that receive a non-2xx response without a usable error body report
// it through this type so [Tracker.FailRequest] can normalize it.
type HTTPError struct {
	Status int
}

// Error implements the error interface.
func (e HTTPError) Error() string { return "" }

// Request is a snapshot of one tracked call.
type Request struct {
	ID        string    `json:"request_id"`
	Method    string    `json:"method"`
	Endpoint  string    `json:"endpoint"`
	Timestamp time.Time `json:"timestamp"`
	State     State     `json:"state"`

	// Status is the HTTP status of the completed call, when known.
	Status int `json:"status,omitempty"`

	// Error is the normalized failure message. Empty unless State is failed,
	// and empty even then when only a status code was available.
	Error string `json:"error,omitempty"`

	// Result holds the parsed response payload for fulfilled requests.
	Result any `json:"result,omitempty"`

	// Stale marks the record as invalidated; consumers must refetch on read.
	Stale bool `json:"stale,omitempty"`
}

// record is the internal mutable form of a tracked request.
type record struct {
	snapshot Request

	cleaned    bool
	cleanEpoch uint64
}

// Tracker is a concurrency-safe store of request records.
//
// The zero value is not usable; construct with [New].
type Tracker struct {
	mu       sync.Mutex
	requests map[string]*record
	epoch    uint64
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{requests: make(map[string]*record)}
}

// MakeRequest allocates a fresh collision-free id, inserts a pending record,
// and returns the id synchronously so the caller can correlate later.
func (tracker *Tracker) MakeRequest(method, endpoint string) string {
	id := uuidv7.New()

	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.requests[id] = &record{
		snapshot: Request{
			ID:        id,
			Method:    method,
			Endpoint:  endpoint,
			Timestamp: time.Now(),
			State:     StatePending,
		},
	}

	return id
}

// Get returns a copy of the record for id.
func (tracker *Tracker) Get(id string) (Request, bool) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	rec, ok := tracker.requests[id]
	if !ok {
		return Request{}, false
	}
	return rec.snapshot, true
}

// CompleteRequest transitions pending → fulfilled, storing the HTTP status
// and parsed result. It returns [ErrNotPending] if the record already
// reached a terminal state; the stored outcome is left untouched.
func (tracker *Tracker) CompleteRequest(id string, status int, result any) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	rec, ok := tracker.requests[id]
	if !ok {
		return ErrUnknownRequest
	}
	if rec.snapshot.State != StatePending {
		return ErrNotPending
	}

	rec.snapshot.State = StateFulfilled
	rec.snapshot.Status = status
	rec.snapshot.Result = result
	return nil
}

// FailRequest transitions pending → failed, storing a normalized error.
//
// # Normalization
//
// Callers must not need to type-switch on failure shape, so the cause is
// reduced here:
//
//   - [HTTPError] (or any error): status code where carried, message otherwise
//   - a plain Go error with message "x": error = "x"
//   - anything else (bare string, nil, unexpected shape): error = "unknown"
func (tracker *Tracker) FailRequest(id string, cause any) error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	rec, ok := tracker.requests[id]
	if !ok {
		return ErrUnknownRequest
	}
	if rec.snapshot.State != StatePending {
		return ErrNotPending
	}

	rec.snapshot.State = StateFailed
	rec.snapshot.Status, rec.snapshot.Error = normalize(cause)
	return nil
}

// normalize reduces an arbitrary failure shape to (status, message).
func normalize(cause any) (int, string) {
	switch failure := cause.(type) {
	case HTTPError:
		return failure.Status, ""
	case *HTTPError:
		if failure != nil {
			return failure.Status, ""
		}
	case error:
		if failure != nil {
			return 0, failure.Error()
		}
	}
	return 0, "unknown"
}

// CleanupRequest marks the record eligible for deletion in the current epoch.
// Physical removal is deferred to a later [Tracker.Sweep].
func (tracker *Tracker) CleanupRequest(id string) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if rec, ok := tracker.requests[id]; ok {
		rec.cleaned = true
		rec.cleanEpoch = tracker.epoch
	}
}

// Retain clears a pending cleanup mark, keeping the record alive. A consumer
// re-acquiring a record it just released calls this instead of re-issuing
// the request.
func (tracker *Tracker) Retain(id string) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if rec, ok := tracker.requests[id]; ok {
		rec.cleaned = false
	}
}

// BustRequestCache marks every record stale, forcing consumers to refetch
// on the next read. Used when upstream state invalidates many cached
// results at once.
func (tracker *Tracker) BustRequestCache() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	for _, rec := range tracker.requests {
		rec.snapshot.Stale = true
	}
}

// Sweep advances the reclamation epoch and deletes every record that was
// marked for cleanup in a previous epoch. It returns the number of records
// removed.
//
// Records marked during the current epoch survive exactly one sweep, which
// gives concurrent consumers a full epoch to call [Tracker.Retain].
func (tracker *Tracker) Sweep() int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	removed := 0
	for id, rec := range tracker.requests {
		if rec.cleaned && rec.cleanEpoch < tracker.epoch {
			delete(tracker.requests, id)
			removed++
		}
	}

	tracker.epoch++
	return removed
}

// Len reports the number of live records, marked or not.
func (tracker *Tracker) Len() int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return len(tracker.requests)
}
