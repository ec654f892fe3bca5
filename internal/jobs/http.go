// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/platform/middleware"
	requestutil "github.com/peerreview/journalhub/internal/platform/request"
	"github.com/peerreview/journalhub/internal/platform/respond"
	"github.com/peerreview/journalhub/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/", handler.listJobs)
		authed.Post("/", handler.enqueueJob)
		authed.Get("/{id}", handler.getJob)

		// Stubbed lifecycle controls: both answer 501.
		authed.Post("/{id}/cancel", handler.cancelJob)
		authed.Post("/{id}/pause", handler.pauseJob)
	})
}

type enqueueInput struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (handler *Handler) enqueueJob(writer http.ResponseWriter, request *http.Request) {
	var input enqueueInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	job, err := handler.service.EnqueueJob(request.Context(), input.Name, input.Payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 202: the handle is returned immediately, completion is asynchronous.
	respond.Accepted(writer, job)
}

func (handler *Handler) listJobs(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	list, total, err := handler.service.ListJobs(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getJob(writer http.ResponseWriter, request *http.Request) {
	job, err := handler.service.GetJob(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, job)
}

func (handler *Handler) cancelJob(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, handler.service.CancelJob(request.Context(), requestutil.Param(request, "id")))
}

func (handler *Handler) pauseJob(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, handler.service.PauseJob(request.Context(), requestutil.Param(request, "id")))
}
