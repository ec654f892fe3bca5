// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
	"github.com/peerreview/journalhub/internal/platform/validate"
)

const FieldStatus = "status"

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

func (service *Service) ListFeatures(context context.Context) ([]*Feature, error) {
	return service.repo.List(context)
}

// GetFeature never 404s: a name with no row reports the virtual uncreated
// status, so the admin screen can offer the create transition.
func (service *Service) GetFeature(context context.Context, name string) (*Feature, error) {
	f, err := service.repo.Get(context, name)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return &Feature{Name: name, Status: StatusUncreated}, nil
		}
		return nil, err
	}
	return f, nil
}

// Transition moves a flag to the requested status. Unknown target statuses
// and edges outside the machine are validation errors; a concurrent PATCH
// losing the compare-and-set surfaces as a conflict.
func (service *Service) Transition(context context.Context, name string, next Status) (*Feature, error) {
	validator := &validate.Validator{}
	validator.Required("name", name)
	validator.Custom(FieldStatus, !next.Valid() || next == StatusUncreated,
		fmt.Sprintf("unknown target status %q", next))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.GetFeature(context, name)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(next) {
		return nil, apperr.ValidationError(
			fmt.Sprintf("cannot transition feature %q from %s to %s", name, current.Status, next))
	}

	var updated *Feature
	if current.Status == StatusUncreated {
		updated = &Feature{Name: name, Status: next}
		err = service.repo.Create(context, updated)
	} else {
		updated, err = service.repo.UpdateStatus(context, name, current.Status, next)
		if errors.Is(err, dberr.ErrNotFound) {
			err = apperr.Conflict("Feature status changed concurrently")
		}
	}
	if err != nil {
		return nil, err
	}

	service.logger.Info("feature_transitioned",
		slog.String("feature", name),
		slog.String("from", string(current.Status)),
		slog.String("to", string(next)),
	)
	return updated, nil
}

// Enabled reports whether the named flag is switched on. Unknown flags are
// off.
func (service *Service) Enabled(context context.Context, name string) bool {
	f, err := service.GetFeature(context, name)
	if err != nil {
		service.logger.Warn("feature_check_failed", slog.String("feature", name), slog.Any("error", err))
		return false
	}
	return f.On()
}
