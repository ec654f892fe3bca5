// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package feature

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

/*
TestStatus_Transitions walks the whole edge set of the lifecycle machine:
the creation chain, the migrate/rollback loop, the enable/disable toggle,
and a sample of edges that must not exist.
*/
func TestStatus_Transitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusUncreated, StatusCreated},
		{StatusCreated, StatusInitialized},
		{StatusInitialized, StatusMigrated},
		{StatusInitialized, StatusEnabled},
		{StatusMigrated, StatusInitialized},
		{StatusMigrated, StatusRolledBack},
		{StatusMigrated, StatusEnabled},
		{StatusRolledBack, StatusMigrated},
		{StatusEnabled, StatusDisabled},
		{StatusDisabled, StatusEnabled},
	}
	for _, edge := range allowed {
		assert.True(t, edge.from.CanTransition(edge.to), "%s -> %s should be allowed", edge.from, edge.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusUncreated, StatusEnabled},
		{StatusCreated, StatusMigrated},
		{StatusCreated, StatusEnabled},
		{StatusInitialized, StatusRolledBack},
		{StatusRolledBack, StatusEnabled},
		{StatusEnabled, StatusCreated},
		{StatusDisabled, StatusMigrated},
		{StatusEnabled, StatusUncreated},
	}
	for _, edge := range forbidden {
		assert.False(t, edge.from.CanTransition(edge.to), "%s -> %s should be rejected", edge.from, edge.to)
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusUncreated.Valid())
	assert.True(t, StatusRolledBack.Valid())
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}

// fakeRepository keeps flags in a map.
type fakeRepository struct {
	features map[string]*Feature
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{features: map[string]*Feature{}}
}

func (fake *fakeRepository) List(_ context.Context) ([]*Feature, error) {
	var out []*Feature
	for _, f := range fake.features {
		out = append(out, f)
	}
	return out, nil
}

func (fake *fakeRepository) Get(_ context.Context, name string) (*Feature, error) {
	f, ok := fake.features[name]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (fake *fakeRepository) Create(_ context.Context, f *Feature) error {
	if _, exists := fake.features[f.Name]; exists {
		return apperr.Conflict("Resource already exists")
	}
	copied := *f
	fake.features[f.Name] = &copied
	return nil
}

func (fake *fakeRepository) UpdateStatus(_ context.Context, name string, from, to Status) (*Feature, error) {
	f, ok := fake.features[name]
	if !ok || f.Status != from {
		return nil, dberr.ErrNotFound
	}
	f.Status = to
	copied := *f
	return &copied, nil
}

func newTestService(fake *fakeRepository) *Service {
	return NewService(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_GetFeature_UnknownIsUncreated verifies the virtual status: an
unknown name reports uncreated instead of a 404.
*/
func TestService_GetFeature_UnknownIsUncreated(t *testing.T) {
	service := newTestService(newFakeRepository())

	f, err := service.GetFeature(context.Background(), "reputation")
	require.NoError(t, err)
	assert.Equal(t, StatusUncreated, f.Status)
	assert.False(t, f.On())
}

/*
TestService_Transition_FullLifecycle drives one flag through create,
initialize, migrate, rollback, re-migrate, enable and disable.
*/
func TestService_Transition_FullLifecycle(t *testing.T) {
	service := newTestService(newFakeRepository())
	ctx := context.Background()

	steps := []Status{
		StatusCreated,
		StatusInitialized,
		StatusMigrated,
		StatusRolledBack,
		StatusMigrated,
		StatusEnabled,
		StatusDisabled,
	}

	for _, next := range steps {
		f, err := service.Transition(ctx, "reputation", next)
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, f.Status)
	}

	assert.False(t, service.Enabled(ctx, "reputation"))

	_, err := service.Transition(ctx, "reputation", StatusEnabled)
	require.NoError(t, err)
	assert.True(t, service.Enabled(ctx, "reputation"))
}

/*
TestService_Transition_IllegalEdge verifies an edge outside the machine is
rejected as a validation error and leaves the stored status untouched.
*/
func TestService_Transition_IllegalEdge(t *testing.T) {
	fake := newFakeRepository()
	service := newTestService(fake)
	ctx := context.Background()

	_, err := service.Transition(ctx, "reputation", StatusCreated)
	require.NoError(t, err)

	_, err = service.Transition(ctx, "reputation", StatusEnabled)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	f, err := service.GetFeature(ctx, "reputation")
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, f.Status)
}

func TestService_Transition_UnknownTargetStatus(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Transition(context.Background(), "reputation", Status("shipped"))
	require.Error(t, err)

	_, err = service.Transition(context.Background(), "reputation", StatusUncreated)
	require.Error(t, err)
}

func TestService_Enabled_OnlyWhenEnabled(t *testing.T) {
	fake := newFakeRepository()
	fake.features["search"] = &Feature{Name: "search", Status: StatusMigrated}
	fake.features["orcid"] = &Feature{Name: "orcid", Status: StatusEnabled}
	service := newTestService(fake)

	assert.False(t, service.Enabled(context.Background(), "search"))
	assert.True(t, service.Enabled(context.Background(), "orcid"))
	assert.False(t, service.Enabled(context.Background(), "missing"))
}
