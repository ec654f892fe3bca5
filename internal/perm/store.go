// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package perm

import "context"

// AuthorRef names one author of a paper and the role they should hold.
type AuthorRef struct {
	UserID   string
	RoleName string
	IsOwner  bool
}

// Repository is the persistence surface of the permission model.
//
// CreatePaperRoles and AssignPaperRoles are transactional in the
// implementation: a paper never ends up with one role of the canonical pair,
// or with a partial author assignment.
type Repository interface {
	CreatePaperRoles(ctx context.Context, paperID int) ([]Role, error)
	AssignPaperRoles(ctx context.Context, paperID int, authors []AuthorRef) error
	RolesForPaper(ctx context.Context, paperID int) ([]Role, error)
	GrantsForUser(ctx context.Context, userID string, paperID int) ([]Grant, error)

	VisibleDraftSubmissions(ctx context.Context, userID string) ([]int, error)
	AuthoredDrafts(ctx context.Context, userID string) ([]int, error)
	Preprints(ctx context.Context) ([]int, error)
}
