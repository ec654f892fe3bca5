// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package field

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/platform/middleware"
	requestutil "github.com/peerreview/journalhub/internal/platform/request"
	"github.com/peerreview/journalhub/internal/platform/respond"
	"github.com/peerreview/journalhub/internal/platform/sec"
	"github.com/peerreview/journalhub/pkg/convert"
	"github.com/peerreview/journalhub/pkg/pagination"
	"github.com/peerreview/journalhub/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCollectionRoutes mounts /fields.
func (handler *Handler) RegisterCollectionRoutes(router chi.Router) {
	router.Get("/", handler.listFields)
	router.With(middleware.RequireRole(sec.RoleModerator)).Post("/", handler.createField)
}

// RegisterItemRoutes mounts /field/{id}.
func (handler *Handler) RegisterItemRoutes(router chi.Router) {
	router.Get("/{id}", handler.getField)

	router.Group(func(modRoute chi.Router) {
		modRoute.Use(middleware.RequireRole(sec.RoleModerator))

		modRoute.Put("/{id}", handler.updateField)
		modRoute.Patch("/{id}", handler.updateField)
		modRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteField)
	})
}

func (handler *Handler) listFields(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
		Type:  request.URL.Query().Get("type"),
	}
	if raw := request.URL.Query().Get("parent_id"); raw != "" {
		filter.ParentID = pointer.To(convert.ToIntD(raw, 0))
	}

	fields, total, err := handler.service.ListFields(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, fields, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getField(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	field, err := handler.service.GetField(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, field)
}

func (handler *Handler) createField(writer http.ResponseWriter, request *http.Request) {
	var input Field
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateField(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateField(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Field
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateField(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteField(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteField(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
