// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package perm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peerreview/journalhub/internal/platform/validate"
	"github.com/peerreview/journalhub/pkg/slice"
)

// Validation field names.
const (
	FieldUserID = "user_id"
	FieldRole   = "role"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateRoles creates the canonical corresponding-author and author roles
// for a new paper.
func (service *Service) CreateRoles(context context.Context, paperID int) ([]Role, error) {
	roles, err := service.repo.CreatePaperRoles(context, paperID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("paper_roles_created",
		slog.Int("paper_id", paperID),
		slog.Int("count", len(roles)),
	)
	return roles, nil
}

// AssignRoles links each author to the named paper role. An author naming a
// role the paper does not have is a validation error, never a silent default
// assignment.
func (service *Service) AssignRoles(context context.Context, paperID int, authors []AuthorRef) error {
	roles, err := service.repo.RolesForPaper(context, paperID)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(roles))
	for _, role := range roles {
		known[role.Name] = true
	}

	validator := &validate.Validator{}
	for _, author := range authors {
		validator.UUID(FieldUserID, author.UserID)
		validator.Required(FieldRole, author.RoleName)
		validator.Custom(FieldRole, author.RoleName != "" && !known[author.RoleName],
			fmt.Sprintf("paper has no role named %q", author.RoleName))
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.AssignPaperRoles(context, paperID, authors); err != nil {
		return err
	}

	service.logger.Info("paper_roles_assigned",
		slog.Int("paper_id", paperID),
		slog.Int("authors", len(authors)),
	)
	return nil
}

// SetupPaperAccess creates the canonical roles for a fresh paper and assigns
// its authors in one call. Used on paper creation.
func (service *Service) SetupPaperAccess(context context.Context, paperID int, authors []AuthorRef) error {
	if _, err := service.CreateRoles(context, paperID); err != nil {
		return err
	}
	return service.AssignRoles(context, paperID, authors)
}

// Can reports whether the user holds the grant on the paper, directly or
// through a role.
func (service *Service) Can(context context.Context, userID string, paperID int, grant Grant) (bool, error) {
	grants, err := service.repo.GrantsForUser(context, userID, paperID)
	if err != nil {
		return false, err
	}

	return slice.Contains(grants, grant), nil
}

// VisibleDraftSubmissions returns ids of draft papers the user may see
// through journal membership.
func (service *Service) VisibleDraftSubmissions(context context.Context, userID string) ([]int, error) {
	return service.repo.VisibleDraftSubmissions(context, userID)
}

// AuthoredDrafts returns ids of draft papers the user co-authors.
func (service *Service) AuthoredDrafts(context context.Context, userID string) ([]int, error) {
	return service.repo.AuthoredDrafts(context, userID)
}

// Preprints returns ids of draft papers published as public preprints.
func (service *Service) Preprints(context context.Context) ([]int, error) {
	return service.repo.Preprints(context)
}
