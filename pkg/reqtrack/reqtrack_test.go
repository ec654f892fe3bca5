// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package reqtrack_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/pkg/reqtrack"
)

/*
TestLifecycle_Basic walks a request through pending → fulfilled.
*/
func TestLifecycle_Basic(t *testing.T) {
	tracker := reqtrack.New()

	id := tracker.MakeRequest("GET", "/papers")
	require.NotEmpty(t, id)

	rec, ok := tracker.Get(id)
	require.True(t, ok)
	assert.Equal(t, reqtrack.StatePending, rec.State)
	assert.Equal(t, "GET", rec.Method)
	assert.Equal(t, "/papers", rec.Endpoint)

	require.NoError(t, tracker.CompleteRequest(id, 200, []string{"paper-1"}))

	rec, _ = tracker.Get(id)
	assert.Equal(t, reqtrack.StateFulfilled, rec.State)
	assert.Equal(t, 200, rec.Status)
}

/*
TestLifecycle_NeverRegresses checks that once a record is terminal, no
subsequent action moves it back to pending or flips its outcome.
*/
func TestLifecycle_NeverRegresses(t *testing.T) {
	tracker := reqtrack.New()

	id := tracker.MakeRequest("POST", "/reviews")
	require.NoError(t, tracker.CompleteRequest(id, 201, nil))

	// A late failure must not override the fulfilled outcome.
	err := tracker.FailRequest(id, errors.New("late network error"))
	assert.ErrorIs(t, err, reqtrack.ErrNotPending)

	// Nor can a second completion rewrite the stored status.
	err = tracker.CompleteRequest(id, 500, nil)
	assert.ErrorIs(t, err, reqtrack.ErrNotPending)

	rec, _ := tracker.Get(id)
	assert.Equal(t, reqtrack.StateFulfilled, rec.State)
	assert.Equal(t, 201, rec.Status)
}

/*
TestFailRequest_Normalization covers the three failure shapes: a native
error stores its message, a status-only failure stores the code with an
empty message, and anything unrecognizable stores "unknown".
*/
func TestFailRequest_Normalization(t *testing.T) {
	tests := []struct {
		name       string
		cause      any
		wantStatus int
		wantError  string
	}{
		{"native_error", errors.New("x"), 0, "x"},
		{"http_status_only", reqtrack.HTTPError{Status: 404}, 404, ""},
		{"http_status_pointer", &reqtrack.HTTPError{Status: 502}, 502, ""},
		{"bare_string", "connection reset", 0, "unknown"},
		{"nil_cause", nil, 0, "unknown"},
		{"unexpected_shape", struct{ Code int }{418}, 0, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := reqtrack.New()
			id := tracker.MakeRequest("GET", "/journal/1")

			require.NoError(t, tracker.FailRequest(id, tt.cause))

			rec, _ := tracker.Get(id)
			assert.Equal(t, reqtrack.StateFailed, rec.State)
			assert.Equal(t, tt.wantStatus, rec.Status)
			assert.Equal(t, tt.wantError, rec.Error)
		})
	}
}

/*
TestFailRequest_NormalizationIdempotence re-checks that the same cause
always normalizes to the same stored value across fresh records.
*/
func TestFailRequest_NormalizationIdempotence(t *testing.T) {
	tracker := reqtrack.New()

	for i := 0; i < 3; i++ {
		id := tracker.MakeRequest("GET", "/fields")
		require.NoError(t, tracker.FailRequest(id, errors.New("x")))

		rec, _ := tracker.Get(id)
		assert.Equal(t, "x", rec.Error)
	}
}

/*
TestSweep_TwoPhaseReclamation verifies that a record marked for cleanup
survives the sweep of its own epoch and is removed by the next one.
*/
func TestSweep_TwoPhaseReclamation(t *testing.T) {
	tracker := reqtrack.New()

	id := tracker.MakeRequest("GET", "/papers")
	require.NoError(t, tracker.CompleteRequest(id, 200, nil))

	tracker.CleanupRequest(id)

	// First sweep: the record was marked in the current epoch, so it lives.
	assert.Equal(t, 0, tracker.Sweep())
	_, ok := tracker.Get(id)
	assert.True(t, ok)

	// Second sweep: the mark is now a full epoch old.
	assert.Equal(t, 1, tracker.Sweep())
	_, ok = tracker.Get(id)
	assert.False(t, ok)
}

/*
TestRetain_CancelsCleanup models a fast release/re-acquire cycle: retaining
between the mark and the sweeps keeps the record alive indefinitely.
*/
func TestRetain_CancelsCleanup(t *testing.T) {
	tracker := reqtrack.New()

	id := tracker.MakeRequest("GET", "/papers")
	tracker.CleanupRequest(id)
	tracker.Retain(id)

	tracker.Sweep()
	tracker.Sweep()

	_, ok := tracker.Get(id)
	assert.True(t, ok)
	assert.Equal(t, 1, tracker.Len())
}

/*
TestBustRequestCache marks every record stale without touching its state.
*/
func TestBustRequestCache(t *testing.T) {
	tracker := reqtrack.New()

	first := tracker.MakeRequest("GET", "/features")
	second := tracker.MakeRequest("GET", "/journals")
	require.NoError(t, tracker.CompleteRequest(first, 200, nil))

	tracker.BustRequestCache()

	rec, _ := tracker.Get(first)
	assert.True(t, rec.Stale)
	assert.Equal(t, reqtrack.StateFulfilled, rec.State)

	rec, _ = tracker.Get(second)
	assert.True(t, rec.Stale)
	assert.Equal(t, reqtrack.StatePending, rec.State)
}

/*
TestIndependentIDs checks that two requests for the same endpoint get
independent ids and lifecycles.
*/
func TestIndependentIDs(t *testing.T) {
	tracker := reqtrack.New()

	first := tracker.MakeRequest("GET", "/papers")
	second := tracker.MakeRequest("GET", "/papers")
	require.NotEqual(t, first, second)

	require.NoError(t, tracker.FailRequest(first, errors.New("timeout")))

	rec, _ := tracker.Get(second)
	assert.Equal(t, reqtrack.StatePending, rec.State)
}
