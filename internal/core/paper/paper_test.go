// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

const (
	ownerID    = "0198f2c4-1111-7abc-8def-000000000001"
	coauthorID = "0198f2c4-1111-7abc-8def-000000000002"
	strangerID = "0198f2c4-1111-7abc-8def-000000000003"
	memberID   = "0198f2c4-1111-7abc-8def-000000000004"
)

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	papers   map[int]*Paper
	events   map[int]*Event
	versions []*Version
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{papers: map[int]*Paper{}, events: map[int]*Event{}, nextID: 1}
}

func (fake *fakeRepository) ListPapers(_ context.Context, f Filter, _, _ int) ([]*Paper, int, error) {
	if f.IDs != nil && len(f.IDs) == 0 {
		return nil, 0, nil
	}
	allowed := map[int]bool{}
	for _, id := range f.IDs {
		allowed[id] = true
	}

	var out []*Paper
	for _, p := range fake.papers {
		if f.IDs != nil && !allowed[p.ID] {
			continue
		}
		if f.DraftsOnly && !p.IsDraft {
			continue
		}
		if f.PublishedOnly && p.IsDraft {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (fake *fakeRepository) GetPaper(_ context.Context, id int) (*Paper, error) {
	p, ok := fake.papers[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func (fake *fakeRepository) CreatePaper(_ context.Context, p *Paper) error {
	p.ID = fake.nextID
	fake.nextID++
	fake.papers[p.ID] = p
	return nil
}

func (fake *fakeRepository) UpdateFlags(_ context.Context, id int, isDraft, showPreprint bool) error {
	p, ok := fake.papers[id]
	if !ok {
		return dberr.ErrNotFound
	}
	p.IsDraft = isDraft
	p.ShowPreprint = showPreprint
	return nil
}

func (fake *fakeRepository) SoftDeletePaper(_ context.Context, id int) error {
	if _, ok := fake.papers[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(fake.papers, id)
	return nil
}

func (fake *fakeRepository) IsAuthor(_ context.Context, paperID int, userID string) (bool, error) {
	p, ok := fake.papers[paperID]
	if !ok {
		return false, nil
	}
	for _, author := range p.Authors {
		if author.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (fake *fakeRepository) ListVersions(_ context.Context, paperID int) ([]*Version, error) {
	var out []*Version
	for _, v := range fake.versions {
		if v.PaperID == paperID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (fake *fakeRepository) LatestVersion(_ context.Context, paperID int) (int, error) {
	latest := 0
	for _, v := range fake.versions {
		if v.PaperID == paperID && v.Version > latest {
			latest = v.Version
		}
	}
	return latest, nil
}

func (fake *fakeRepository) CreateVersion(_ context.Context, v *Version) error {
	fake.versions = append(fake.versions, v)
	return nil
}

func (fake *fakeRepository) ListEvents(_ context.Context, paperID int) ([]*Event, error) {
	var out []*Event
	for _, e := range fake.events {
		if e.PaperID == paperID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (fake *fakeRepository) GetEvent(_ context.Context, id int) (*Event, error) {
	e, ok := fake.events[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (fake *fakeRepository) CreateEvent(_ context.Context, e *Event) error {
	e.ID = fake.nextID
	fake.nextID++
	fake.events[e.ID] = e
	return nil
}

func (fake *fakeRepository) UpdateEventVisibility(_ context.Context, id int, visibility []string) error {
	e, ok := fake.events[id]
	if !ok {
		return dberr.ErrNotFound
	}
	e.Visibility = visibility
	return nil
}

// fakeAccess grants everything to authors recorded on the paper and
// reports the configured visible-draft sets.
type fakeAccess struct {
	repo          *fakeRepository
	visibleByUser map[string][]int
	setupCalls    int
}

func (fake *fakeAccess) SetupPaperAccess(_ context.Context, _ int, _ []perm.AuthorRef) error {
	fake.setupCalls++
	return nil
}

func (fake *fakeAccess) Can(ctx context.Context, userID string, paperID int, _ perm.Grant) (bool, error) {
	return fake.repo.IsAuthor(ctx, paperID, userID)
}

func (fake *fakeAccess) VisibleDraftSubmissions(_ context.Context, userID string) ([]int, error) {
	return fake.visibleByUser[userID], nil
}

func (fake *fakeAccess) AuthoredDrafts(ctx context.Context, userID string) ([]int, error) {
	var out []int
	for id := range fake.repo.papers {
		authored, _ := fake.repo.IsAuthor(ctx, id, userID)
		if authored && fake.repo.papers[id].IsDraft {
			out = append(out, id)
		}
	}
	return out, nil
}

func (fake *fakeAccess) Preprints(_ context.Context) ([]int, error) {
	var out []int
	for id, p := range fake.repo.papers {
		if p.IsDraft && p.ShowPreprint {
			out = append(out, id)
		}
	}
	return out, nil
}

// fakeFiles stores uploads in a map.
type fakeFiles struct {
	objects map[string][]byte
}

func (fake *fakeFiles) Upload(_ context.Context, key string, content []byte, _ string) error {
	if fake.objects == nil {
		fake.objects = map[string][]byte{}
	}
	fake.objects[key] = content
	return nil
}

func (fake *fakeFiles) Download(_ context.Context, key string) ([]byte, error) {
	content, ok := fake.objects[key]
	if !ok {
		return nil, apperr.NotFound("Object")
	}
	return content, nil
}

type fakeMembers struct{ members map[string]bool }

func (fake *fakeMembers) IsMemberOfPaperJournal(_ context.Context, _ int, userID string) (bool, error) {
	return fake.members[userID], nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeAccess, *fakeFiles) {
	t.Helper()
	repo := newFakeRepository()
	access := &fakeAccess{repo: repo, visibleByUser: map[string][]int{}}
	files := &fakeFiles{}
	members := &fakeMembers{members: map[string]bool{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, access, files, members, logger), repo, access, files
}

func validPaper() *Paper {
	return &Paper{
		Title: "A Theory of Everything",
		Authors: []Author{
			{UserID: ownerID, Order: 1, Role: perm.RoleNameCorrespondingAuthor, IsOwner: true},
			{UserID: coauthorID, Order: 2, Role: perm.RoleNameAuthor},
		},
	}
}

/*
TestService_CreatePaper verifies creation forces draft status, persists the
author list and sets up the canonical paper roles.
*/
func TestService_CreatePaper(t *testing.T) {
	service, repo, access, _ := newTestService(t)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))

	assert.True(t, p.IsDraft)
	assert.NotZero(t, p.ID)
	assert.Len(t, repo.papers, 1)
	assert.Equal(t, 1, access.setupCalls)
}

func TestService_CreatePaper_Validation(t *testing.T) {
	service, _, _, _ := newTestService(t)

	cases := []struct {
		name   string
		mutate func(*Paper)
	}{
		{"missing title", func(p *Paper) { p.Title = "" }},
		{"no authors", func(p *Paper) { p.Authors = nil }},
		{"no owner", func(p *Paper) { p.Authors[0].IsOwner = false }},
		{"two owners", func(p *Paper) { p.Authors[1].IsOwner = true }},
		{"unknown role", func(p *Paper) { p.Authors[1].Role = "ghost-writer" }},
		{"bad user id", func(p *Paper) { p.Authors[0].UserID = "not-a-uuid" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPaper()
			tc.mutate(p)
			assert.Error(t, service.CreatePaper(context.Background(), p))
		})
	}
}

/*
TestService_GetPaper_DraftVisibility: a plain draft reads as not found for
strangers and anonymous viewers, while authors and users with journal
visibility see it. A preprint draft is public.
*/
func TestService_GetPaper_DraftVisibility(t *testing.T) {
	service, _, access, _ := newTestService(t)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))

	_, err := service.GetPaper(context.Background(), p.ID, "")
	assert.Error(t, err)

	_, err = service.GetPaper(context.Background(), p.ID, strangerID)
	assert.Error(t, err)

	_, err = service.GetPaper(context.Background(), p.ID, ownerID)
	assert.NoError(t, err)

	access.visibleByUser[strangerID] = []int{p.ID}
	_, err = service.GetPaper(context.Background(), p.ID, strangerID)
	assert.NoError(t, err)

	require.NoError(t, service.SetFlags(context.Background(), p.ID, ownerID, true, true))
	_, err = service.GetPaper(context.Background(), p.ID, "")
	assert.NoError(t, err)
}

func TestService_UpdatePaper_NotImplemented(t *testing.T) {
	service, _, _, _ := newTestService(t)

	err := service.UpdatePaper(context.Background(), 1)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotImplemented, appErr.HTTPStatus)
}

/*
TestService_UploadVersion verifies version numbering, the deterministic
object key and the restricted timeline event.
*/
func TestService_UploadVersion(t *testing.T) {
	service, repo, _, files := newTestService(t)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))

	first, err := service.UploadVersion(context.Background(), p.ID, ownerID, []byte("%PDF-1.7"), "application/pdf", ".pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Contains(t, files.objects, first.FileKey)

	second, err := service.UploadVersion(context.Background(), p.ID, ownerID, []byte("%PDF-1.7 v2"), "application/pdf", ".pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.NotEqual(t, first.FileKey, second.FileKey)

	events, err := repo.ListEvents(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.False(t, events[0].HasTag(TagPublic))
}

func TestService_UploadVersion_RequiresGrant(t *testing.T) {
	service, _, _, _ := newTestService(t)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))

	_, err := service.UploadVersion(context.Background(), p.ID, strangerID, []byte("%PDF-1.7"), "application/pdf", ".pdf")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
}

/*
TestService_ToggleEventTag covers the symmetric-difference toggle through
the service: add, remove, unknown tag, and the never-empty guard.
*/
func TestService_ToggleEventTag(t *testing.T) {
	service, repo, _, _ := newTestService(t)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))

	event := &Event{PaperID: p.ID, ActorID: ownerID, Type: "decision", Visibility: []string{TagEditors}}
	require.NoError(t, repo.CreateEvent(context.Background(), event))

	toggled, err := service.ToggleEventTag(context.Background(), event.ID, TagAuthors, ownerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{TagEditors, TagAuthors}, toggled.Visibility)

	toggled, err = service.ToggleEventTag(context.Background(), event.ID, TagAuthors, ownerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{TagEditors}, toggled.Visibility)

	_, err = service.ToggleEventTag(context.Background(), event.ID, "everyone", ownerID)
	assert.Error(t, err)

	// Removing the last tag would leave the set empty.
	_, err = service.ToggleEventTag(context.Background(), event.ID, TagEditors, ownerID)
	assert.Error(t, err)
}

/*
TestService_Timeline_WithholdsRestrictedEvents: a restricted event on a
published paper must not reach anonymous or stranger viewers; authors and
journal members still see it.
*/
func TestService_Timeline_WithholdsRestrictedEvents(t *testing.T) {
	repo := newFakeRepository()
	access := &fakeAccess{repo: repo, visibleByUser: map[string][]int{}}
	members := &fakeMembers{members: map[string]bool{memberID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(repo, access, &fakeFiles{}, members, logger)

	p := validPaper()
	require.NoError(t, service.CreatePaper(context.Background(), p))
	repo.papers[p.ID].IsDraft = false

	public := &Event{PaperID: p.ID, ActorID: ownerID, Type: "published", Visibility: []string{TagPublic}}
	restricted := &Event{PaperID: p.ID, ActorID: memberID, Type: "decision", Visibility: []string{TagEditors}}
	require.NoError(t, repo.CreateEvent(context.Background(), public))
	require.NoError(t, repo.CreateEvent(context.Background(), restricted))

	anonymous, err := service.Timeline(context.Background(), p.ID, "")
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.Equal(t, public.ID, anonymous[0].ID)

	stranger, err := service.Timeline(context.Background(), p.ID, strangerID)
	require.NoError(t, err)
	assert.Len(t, stranger, 1)

	member, err := service.Timeline(context.Background(), p.ID, memberID)
	require.NoError(t, err)
	assert.Len(t, member, 2)

	author, err := service.Timeline(context.Background(), p.ID, ownerID)
	require.NoError(t, err)
	assert.Len(t, author, 2)
}
