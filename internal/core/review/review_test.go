// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package review

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

const (
	reviewerID = "0198f2c4-2222-7abc-8def-000000000001"
	otherID    = "0198f2c4-2222-7abc-8def-000000000002"
)

type fakeRepository struct {
	reviews map[int]*Review
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: map[int]*Review{}, nextID: 1}
}

func (fake *fakeRepository) ListReviews(_ context.Context, _ Filter, _, _ int) ([]*Review, int, error) {
	return nil, 0, nil
}

func (fake *fakeRepository) GetReview(_ context.Context, id int) (*Review, error) {
	r, ok := fake.reviews[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (fake *fakeRepository) CreateReview(_ context.Context, r *Review) error {
	r.ID = fake.nextID
	fake.nextID++
	copied := *r
	fake.reviews[r.ID] = &copied
	return nil
}

func (fake *fakeRepository) UpdateReview(_ context.Context, r *Review) error {
	if _, ok := fake.reviews[r.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *r
	fake.reviews[r.ID] = &copied
	return nil
}

func (fake *fakeRepository) DeleteReview(_ context.Context, id int) error {
	if _, ok := fake.reviews[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(fake.reviews, id)
	return nil
}

// fakeAccess grants the review action to reviewerID only.
type fakeAccess struct{}

func (fakeAccess) Can(_ context.Context, userID string, _ int, grant perm.Grant) (bool, error) {
	return userID == reviewerID && grant.Action == perm.ActionReview, nil
}

func newTestService(fake *fakeRepository) *Service {
	return NewService(fake, fakeAccess{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func draftReview() *Review {
	return &Review{
		PaperID:        10,
		UserID:         reviewerID,
		Version:        1,
		Summary:        "Sound methodology, minor clarity issues in section 3.",
		Recommendation: RecommendMinorRevisions,
	}
}

func TestService_CreateReview(t *testing.T) {
	fake := newFakeRepository()
	service := newTestService(fake)

	r := draftReview()
	require.NoError(t, service.CreateReview(context.Background(), r))
	assert.Equal(t, StatusDraft, r.Status)
	assert.NotZero(t, r.ID)
}

func TestService_CreateReview_RequiresGrant(t *testing.T) {
	service := newTestService(newFakeRepository())

	r := draftReview()
	r.UserID = otherID
	assert.Error(t, service.CreateReview(context.Background(), r))
}

func TestService_CreateReview_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())

	cases := []struct {
		name   string
		mutate func(*Review)
	}{
		{"missing summary", func(r *Review) { r.Summary = "" }},
		{"unknown recommendation", func(r *Review) { r.Recommendation = "burn-it" }},
		{"no version", func(r *Review) { r.Version = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := draftReview()
			tc.mutate(r)
			assert.Error(t, service.CreateReview(context.Background(), r))
		})
	}
}

/*
TestService_SubmittedReviewIsImmutable: once submitted, a review can be
neither edited, re-submitted nor deleted.
*/
func TestService_SubmittedReviewIsImmutable(t *testing.T) {
	fake := newFakeRepository()
	service := newTestService(fake)

	r := draftReview()
	require.NoError(t, service.CreateReview(context.Background(), r))

	submitted, err := service.SubmitReview(context.Background(), r.ID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)

	edit := draftReview()
	assert.Error(t, service.UpdateReview(context.Background(), r.ID, reviewerID, edit))

	_, err = service.SubmitReview(context.Background(), r.ID, reviewerID)
	assert.Error(t, err)

	assert.Error(t, service.DeleteReview(context.Background(), r.ID, reviewerID))
}

func TestService_OnlyAuthorMayMutate(t *testing.T) {
	fake := newFakeRepository()
	service := newTestService(fake)

	r := draftReview()
	require.NoError(t, service.CreateReview(context.Background(), r))

	assert.Error(t, service.UpdateReview(context.Background(), r.ID, otherID, draftReview()))
	assert.Error(t, service.DeleteReview(context.Background(), r.ID, otherID))
	_, err := service.SubmitReview(context.Background(), r.ID, otherID)
	assert.Error(t, err)
}
