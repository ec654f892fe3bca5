// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package journal

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/apperr"
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

// RegisterCollectionRoutes mounts /journals.
func (handler *Handler) RegisterCollectionRoutes(router chi.Router) {
	router.Get("/", handler.listJournals)
	router.With(middleware.RequireAuth).Post("/", handler.createJournal)
}

// RegisterItemRoutes mounts /journal/*.
func (handler *Handler) RegisterItemRoutes(router chi.Router) {
	router.Get("/{id}", handler.getJournal)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Patch("/{id}", handler.updateJournal)
		authed.Delete("/{id}", handler.deleteJournal)

		authed.Get("/{id}/members", handler.listMembers)
		authed.Post("/{id}/members", handler.addMember)
		authed.Patch("/{id}/member/{userID}", handler.changeMemberRole)
		authed.Delete("/{id}/member/{userID}", handler.removeMember)

		authed.Get("/{id}/submissions", handler.listSubmissions)
		authed.Post("/{id}/submissions", handler.submitPaper)
		authed.Get("/submission/{submissionID}", handler.getSubmission)
		authed.Patch("/submission/{submissionID}/decision", handler.decide)
	})
}

// pathID parses a numeric path parameter, mapping garbage to a 400.
func pathID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, name))
	if err != nil {
		return 0, apperr.ValidationError("Path parameter '" + name + "' must be an integer")
	}
	return id, nil
}

func (handler *Handler) listJournals(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")

	journals, total, err := handler.service.ListJournals(request.Context(), query, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, journals, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getJournal(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	j, err := handler.service.GetJournal(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, j)
}

func (handler *Handler) createJournal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Journal
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateJournal(request.Context(), &input, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateJournal(writer http.ResponseWriter, request *http.Request) {
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

	var input Journal
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateJournal(request.Context(), id, userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteJournal(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteJournal(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
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

	members, err := handler.service.ListMembers(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, members)
}

type memberInput struct {
	UserID      string `json:"user_id"`
	Permissions string `json:"permissions"`
}

func (handler *Handler) addMember(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member := &Member{
		UserID:      input.UserID,
		Permissions: perm.MemberPermissions(input.Permissions),
	}
	if err := handler.service.AddMember(request.Context(), id, actorID, member); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, member)
}

func (handler *Handler) changeMemberRole(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member := &Member{
		UserID:      requestutil.Param(request, "userID"),
		Permissions: perm.MemberPermissions(input.Permissions),
	}
	if err := handler.service.ChangeMemberRole(request.Context(), id, actorID, member); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMember(request.Context(), id, actorID, requestutil.Param(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listSubmissions(writer http.ResponseWriter, request *http.Request) {
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

	submissions, err := handler.service.ListSubmissions(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submissions)
}

type submitInput struct {
	PaperID int `json:"paper_id"`
}

func (handler *Handler) submitPaper(writer http.ResponseWriter, request *http.Request) {
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

	var input submitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.SubmitPaper(request.Context(), id, input.PaperID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, s)
}

func (handler *Handler) getSubmission(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "submissionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.GetSubmission(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

type decisionInput struct {
	Status          string  `json:"status"`
	DecisionComment *string `json:"decision_comment,omitempty"`
}

func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "submissionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input decisionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Decide(request.Context(), id, userID, input.Status, input.DecisionComment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}
