// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package field

import (
	"context"
	"log/slog"

	"github.com/peerreview/journalhub/internal/platform/validate"
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

func (service *Service) ListFields(context context.Context, filter Filter, limit, offset int) ([]*Field, int, error) {
	return service.repo.ListFields(context, filter, limit, offset)
}

func (service *Service) GetField(context context.Context, id int) (*Field, error) {
	return service.repo.GetField(context, id)
}

func (service *Service) CreateField(context context.Context, f *Field) error {
	if err := service.validateField(f); err != nil {
		return err
	}

	if err := service.repo.CreateField(context, f); err != nil {
		return err
	}

	service.logger.Info("field_created", slog.String("name", f.Name))
	return nil
}

func (service *Service) UpdateField(context context.Context, id int, f *Field) error {
	f.ID = id
	if err := service.validateField(f); err != nil {
		return err
	}

	if err := service.repo.UpdateField(context, f); err != nil {
		return err
	}

	service.logger.Info("field_updated", slog.Int("field_id", f.ID))
	return nil
}

func (service *Service) DeleteField(context context.Context, id int) error {
	if err := service.repo.SoftDeleteField(context, id); err != nil {
		return err
	}

	service.logger.Warn("field_deleted", slog.Int("field_id", id))
	return nil
}

func (service *Service) validateField(f *Field) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, f.Name).MaxLen(FieldName, f.Name, 200)
	validator.OneOf(FieldType, f.Type, TypeDiscipline, TypeSubfield)
	// A subfield needs a parent; a discipline is a root.
	validator.Custom(FieldParentID, f.Type == TypeSubfield && f.ParentID == nil, "a subfield requires a parent field")
	validator.Custom(FieldParentID, f.Type == TypeDiscipline && f.ParentID != nil, "a discipline cannot have a parent")

	return validator.Err()
}
