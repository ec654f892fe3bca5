// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package perm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerreview/journalhub/internal/platform/apperr"
)

/*
TestGrant_ParseRejectsUnknown verifies the grant vocabulary is closed: only
known resource/action pairs parse, everything else errors instead of
becoming a permission that never matches.
*/
func TestGrant_ParseRejectsUnknown(t *testing.T) {
	grant, err := ParseGrant("Paper:view")
	require.NoError(t, err)
	assert.Equal(t, ResourcePaper, grant.Resource)
	assert.Equal(t, ActionView, grant.Action)
	assert.Equal(t, "Paper:view", grant.String())

	_, err = ParseGrant("Paper:vview")
	assert.Error(t, err)

	_, err = ParseGrant("Papers:view")
	assert.Error(t, err)

	_, err = ParseGrant("Paper-view")
	assert.Error(t, err)

	_, err = ParseGrant("")
	assert.Error(t, err)
}

/*
TestRole_OwningEntityExclusivity verifies a role is valid only when scoped
to exactly one of a journal or a paper.
*/
func TestRole_OwningEntityExclusivity(t *testing.T) {
	journalID := 3
	paperID := 7

	cases := []struct {
		name    string
		role    Role
		wantErr bool
	}{
		{"paper scoped", Role{Name: "author", PaperID: &paperID}, false},
		{"journal scoped", Role{Name: "editor", JournalID: &journalID}, false},
		{"both set", Role{Name: "broken", JournalID: &journalID, PaperID: &paperID}, true},
		{"neither set", Role{Name: "orphan"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.role.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestPermission_GranteeExclusivity verifies a permission is valid only when
it belongs to exactly one of a user or a role.
*/
func TestPermission_GranteeExclusivity(t *testing.T) {
	userID := "0198f2c4-1111-7abc-8def-000000000001"
	roleID := 12
	grant := Grant{ResourcePaper, ActionView}

	assert.NoError(t, Permission{UserID: &userID, Grant: grant}.Validate())
	assert.NoError(t, Permission{RoleID: &roleID, Grant: grant}.Validate())
	assert.Error(t, Permission{UserID: &userID, RoleID: &roleID, Grant: grant}.Validate())
	assert.Error(t, Permission{Grant: grant}.Validate())

	// A valid grantee never rescues an unknown grant.
	assert.Error(t, Permission{UserID: &userID, Grant: Grant{"Paper", "fly"}}.Validate())
}

/*
TestCanonicalGrantSets verifies the corresponding author strictly extends
the ordinary author: every author grant is held by the corresponding author,
plus edit, delete and create-version.
*/
func TestCanonicalGrantSets(t *testing.T) {
	corresponding := make(map[Grant]bool)
	for _, grant := range CorrespondingAuthorGrants() {
		assert.True(t, grant.Valid())
		corresponding[grant] = true
	}

	for _, grant := range AuthorGrants() {
		assert.True(t, grant.Valid())
		assert.True(t, corresponding[grant], "author grant %s missing from corresponding author", grant)
	}

	assert.True(t, corresponding[Grant{ResourcePaper, ActionEdit}])
	assert.True(t, corresponding[Grant{ResourcePaper, ActionDelete}])
	assert.True(t, corresponding[Grant{ResourcePaper, ActionCreateVersion}])
	assert.Len(t, corresponding, len(AuthorGrants())+3)
}

/*
TestDraftVisible exercises the membership/status matrix of the draft
visibility predicate: rejected is invisible to everyone, reviewers see only
papers under review, editors and owners see every non-rejected status, and
authorship always excludes (authors use the authored-drafts path instead).
*/
func TestDraftVisible(t *testing.T) {
	cases := []struct {
		name       string
		membership MemberPermissions
		status     string
		isAuthor   bool
		want       bool
	}{
		{"editor sees submitted", MemberEditor, "submitted", false, true},
		{"editor sees review", MemberEditor, "review", false, true},
		{"editor sees proofing", MemberEditor, "proofing", false, true},
		{"owner sees submitted", MemberOwner, "submitted", false, true},
		{"reviewer sees review", MemberReviewer, "review", false, true},
		{"reviewer blind to submitted", MemberReviewer, "submitted", false, false},
		{"reviewer blind to proofing", MemberReviewer, "proofing", false, false},
		{"rejected hidden from editor", MemberEditor, "rejected", false, false},
		{"rejected hidden from reviewer", MemberReviewer, "rejected", false, false},
		{"author excluded even as editor", MemberEditor, "review", true, false},
		{"non-member sees nothing", MemberPermissions(""), "review", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DraftVisible(tc.membership, tc.status, tc.isAuthor))
		})
	}
}

// fakeRepository backs service tests without a database.
type fakeRepository struct {
	roles    []Role
	assigned []AuthorRef
}

func (fake *fakeRepository) CreatePaperRoles(_ context.Context, paperID int) ([]Role, error) {
	return fake.roles, nil
}

func (fake *fakeRepository) AssignPaperRoles(_ context.Context, _ int, authors []AuthorRef) error {
	fake.assigned = append(fake.assigned, authors...)
	return nil
}

func (fake *fakeRepository) RolesForPaper(_ context.Context, _ int) ([]Role, error) {
	return fake.roles, nil
}

func (fake *fakeRepository) GrantsForUser(_ context.Context, _ string, _ int) ([]Grant, error) {
	return nil, nil
}

func (fake *fakeRepository) VisibleDraftSubmissions(_ context.Context, _ string) ([]int, error) {
	return nil, nil
}

func (fake *fakeRepository) AuthoredDrafts(_ context.Context, _ string) ([]int, error) {
	return nil, nil
}

func (fake *fakeRepository) Preprints(_ context.Context) ([]int, error) {
	return nil, nil
}

func newTestService(fake *fakeRepository) *Service {
	return NewService(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_AssignRoles_UnknownRoleFails verifies that an author naming a
role the paper does not have produces a validation error and assigns
nothing, rather than silently falling back to a default role.
*/
func TestService_AssignRoles_UnknownRoleFails(t *testing.T) {
	paperID := 10
	fake := &fakeRepository{
		roles: []Role{
			{ID: 1, Name: RoleNameCorrespondingAuthor, PaperID: &paperID},
			{ID: 2, Name: RoleNameAuthor, PaperID: &paperID},
		},
	}
	service := newTestService(fake)

	err := service.AssignRoles(context.Background(), paperID, []AuthorRef{
		{UserID: "0198f2c4-1111-7abc-8def-000000000001", RoleName: RoleNameAuthor},
		{UserID: "0198f2c4-1111-7abc-8def-000000000002", RoleName: "ghost-writer"},
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Empty(t, fake.assigned)
}

/*
TestService_AssignRoles_AssignsKnownRoles covers the happy path: both
canonical role names resolve and every author reaches the repository.
*/
func TestService_AssignRoles_AssignsKnownRoles(t *testing.T) {
	paperID := 10
	fake := &fakeRepository{
		roles: []Role{
			{ID: 1, Name: RoleNameCorrespondingAuthor, PaperID: &paperID},
			{ID: 2, Name: RoleNameAuthor, PaperID: &paperID},
		},
	}
	service := newTestService(fake)

	authors := []AuthorRef{
		{UserID: "0198f2c4-1111-7abc-8def-000000000001", RoleName: RoleNameCorrespondingAuthor, IsOwner: true},
		{UserID: "0198f2c4-1111-7abc-8def-000000000002", RoleName: RoleNameAuthor},
	}

	require.NoError(t, service.AssignRoles(context.Background(), paperID, authors))
	assert.Equal(t, authors, fake.assigned)
}
