// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package review

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/middleware"
	requestutil "github.com/peerreview/journalhub/internal/platform/request"
	"github.com/peerreview/journalhub/internal/platform/respond"
	"github.com/peerreview/journalhub/pkg/convert"
	"github.com/peerreview/journalhub/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCollectionRoutes mounts /reviews.
func (handler *Handler) RegisterCollectionRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.With(middleware.RequireAuth).Post("/", handler.createReview)
}

// RegisterItemRoutes mounts /review/{id}.
func (handler *Handler) RegisterItemRoutes(router chi.Router) {
	router.Get("/{id}", handler.getReview)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Patch("/{id}", handler.updateReview)
		authed.Post("/{id}/submit", handler.submitReview)
		authed.Delete("/{id}", handler.deleteReview)
	})
}

func pathID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, name))
	if err != nil {
		return 0, apperr.ValidationError("Invalid numeric id")
	}
	return id, nil
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		PaperID: convert.ToIntD(request.URL.Query().Get("paper_id"), 0),
		UserID:  request.URL.Query().Get("user_id"),
		Status:  request.URL.Query().Get("status"),
	}

	reviews, total, err := handler.service.ListReviews(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.GetReview(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Review
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.UserID = userID

	if err := handler.service.CreateReview(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Review
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateReview(request.Context(), id, userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) submitReview(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.SubmitReview(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
