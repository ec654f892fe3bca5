// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package feature

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/platform/middleware"
	requestutil "github.com/peerreview/journalhub/internal/platform/request"
	"github.com/peerreview/journalhub/internal/platform/respond"
	"github.com/peerreview/journalhub/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the flag endpoints. Everything here is admin only:
// flags gate unreleased behavior and their migrations.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listFeatures)
		adminRoute.Get("/{name}", handler.getFeature)
		adminRoute.Patch("/{name}", handler.transition)
	})
}

func (handler *Handler) listFeatures(writer http.ResponseWriter, request *http.Request) {
	features, err := handler.service.ListFeatures(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, features)
}

func (handler *Handler) getFeature(writer http.ResponseWriter, request *http.Request) {
	f, err := handler.service.GetFeature(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, f)
}

type transitionInput struct {
	Status Status `json:"status"`
}

func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request) {
	var input transitionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	f, err := handler.service.Transition(request.Context(), requestutil.Param(request, "name"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, f)
}
