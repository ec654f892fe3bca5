// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package review

import (
	"context"
	"log/slog"

	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/validate"
)

// AccessChecker is the slice of the permission service reviews depend on.
type AccessChecker interface {
	Can(ctx context.Context, userID string, paperID int, grant perm.Grant) (bool, error)
}

type Service struct {
	repo   Repository
	access AccessChecker
	logger *slog.Logger
}

func NewService(repo Repository, access AccessChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		access: access,
		logger: logger,
	}
}

func (service *Service) ListReviews(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListReviews(context, filter, limit, offset)
}

func (service *Service) GetReview(context context.Context, id int) (*Review, error) {
	return service.repo.GetReview(context, id)
}

// CreateReview starts a draft review, gated on the review grant for the
// paper.
func (service *Service) CreateReview(context context.Context, r *Review) error {
	if err := service.validateReview(r); err != nil {
		return err
	}

	allowed, err := service.access.Can(context, r.UserID, r.PaperID,
		perm.Grant{Resource: perm.ResourcePaper, Action: perm.ActionReview})
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.Forbidden("You do not have permission to review this paper")
	}

	r.Status = StatusDraft
	if err := service.repo.CreateReview(context, r); err != nil {
		return err
	}

	service.logger.Info("review_created",
		slog.Int("review_id", r.ID),
		slog.Int("paper_id", r.PaperID),
	)
	return nil
}

// UpdateReview edits a draft. Only its author may edit, and a submitted
// review is immutable.
func (service *Service) UpdateReview(context context.Context, id int, actorID string, r *Review) error {
	existing, err := service.repo.GetReview(context, id)
	if err != nil {
		return err
	}
	if existing.UserID != actorID {
		return apperr.Forbidden("Only the review author may edit it")
	}
	if existing.Status == StatusSubmitted {
		return apperr.Conflict("A submitted review can no longer be edited")
	}

	existing.Summary = r.Summary
	existing.Recommendation = r.Recommendation
	if err := service.validateReview(existing); err != nil {
		return err
	}

	if err := service.repo.UpdateReview(context, existing); err != nil {
		return err
	}
	*r = *existing
	return nil
}

// SubmitReview makes a draft final.
func (service *Service) SubmitReview(context context.Context, id int, actorID string) (*Review, error) {
	existing, err := service.repo.GetReview(context, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actorID {
		return nil, apperr.Forbidden("Only the review author may submit it")
	}
	if existing.Status == StatusSubmitted {
		return nil, apperr.Conflict("Review already submitted")
	}

	existing.Status = StatusSubmitted
	if err := service.repo.UpdateReview(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("review_submitted", slog.Int("review_id", id))
	return existing, nil
}

// DeleteReview removes a draft. Submitted reviews are part of the record
// and stay.
func (service *Service) DeleteReview(context context.Context, id int, actorID string) error {
	existing, err := service.repo.GetReview(context, id)
	if err != nil {
		return err
	}
	if existing.UserID != actorID {
		return apperr.Forbidden("Only the review author may delete it")
	}
	if existing.Status == StatusSubmitted {
		return apperr.Conflict("A submitted review cannot be deleted")
	}

	return service.repo.DeleteReview(context, id)
}

func (service *Service) validateReview(r *Review) error {
	validator := &validate.Validator{}
	validator.Required(FieldSummary, r.Summary)
	validator.OneOf(FieldRecommendation, r.Recommendation,
		RecommendAccept, RecommendMinorRevisions, RecommendMajorRevisions, RecommendReject)
	validator.Custom(FieldVersion, r.Version <= 0, "a review must target an uploaded version")
	return validator.Err()
}
