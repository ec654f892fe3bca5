// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/middleware"
	requestutil "github.com/peerreview/journalhub/internal/platform/request"
	"github.com/peerreview/journalhub/internal/platform/respond"
	"github.com/peerreview/journalhub/pkg/pagination"
)

// maxUploadBytes bounds a single PDF upload.
const maxUploadBytes = 50 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCollectionRoutes mounts /papers.
func (handler *Handler) RegisterCollectionRoutes(router chi.Router) {
	router.Get("/", handler.listPublished)
	router.Get("/preprints", handler.listPreprints)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/drafts", handler.listDrafts)
		authed.Post("/", handler.createPaper)
	})
}

// RegisterItemRoutes mounts /paper/{id}.
func (handler *Handler) RegisterItemRoutes(router chi.Router) {
	router.Get("/{id}", handler.getPaper)
	router.Get("/{id}/events", handler.timeline)
	router.Get("/{id}/versions", handler.listVersions)
	router.Get("/{id}/version/{version}/file", handler.downloadVersion)

	// Full replacement is deliberately unsupported.
	router.Put("/{id}", handler.updatePaper)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Patch("/{id}", handler.setFlags)
		authed.Delete("/{id}", handler.deletePaper)
		authed.Post("/{id}/events", handler.recordEvent)
		authed.Patch("/{id}/event/{eventID}/visibility", handler.toggleEventTag)
		authed.Post("/{id}/versions", handler.uploadVersion)
	})
}

func pathID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, name))
	if err != nil {
		return 0, apperr.ValidationError("Invalid numeric id")
	}
	return id, nil
}

// viewerID returns the authenticated user id, or "" for anonymous reads.
func viewerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{Query: request.URL.Query().Get("q")}

	papers, total, err := handler.service.ListPublished(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, papers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listPreprints(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	papers, total, err := handler.service.ListPreprints(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, papers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listDrafts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	papers, total, err := handler.service.ListDrafts(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, papers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPaper(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPaper(request.Context(), id, viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) createPaper(writer http.ResponseWriter, request *http.Request) {
	var input Paper
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePaper(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePaper(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Error(writer, request, handler.service.UpdatePaper(request.Context(), id))
}

type flagsInput struct {
	IsDraft      bool `json:"is_draft"`
	ShowPreprint bool `json:"show_preprint"`
}

func (handler *Handler) setFlags(writer http.ResponseWriter, request *http.Request) {
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

	var input flagsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetFlags(request.Context(), id, userID, input.IsDraft, input.ShowPreprint); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deletePaper(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeletePaper(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Timeline

func (handler *Handler) timeline(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	events, err := handler.service.Timeline(request.Context(), id, viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}

type eventInput struct {
	Type       string   `json:"type"`
	Visibility []string `json:"visibility"`
}

func (handler *Handler) recordEvent(writer http.ResponseWriter, request *http.Request) {
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

	var input eventInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event := &Event{PaperID: id, ActorID: userID, Type: input.Type, Visibility: input.Visibility}
	if err := handler.service.RecordEvent(request.Context(), event); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, event)
}

type toggleInput struct {
	Tag string `json:"tag"`
}

func (handler *Handler) toggleEventTag(writer http.ResponseWriter, request *http.Request) {
	eventID, err := pathID(request, "eventID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input toggleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.ToggleEventTag(request.Context(), eventID, input.Tag, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

// # Versions

func (handler *Handler) listVersions(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	versions, err := handler.service.ListVersions(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, versions)
}

func (handler *Handler) uploadVersion(writer http.ResponseWriter, request *http.Request) {
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

	content, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxUploadBytes))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("File too large or unreadable"))
		return
	}

	contentType := request.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	extension := path.Ext(request.URL.Query().Get("filename"))
	if extension == "" {
		extension = ".pdf"
	}

	version, err := handler.service.UploadVersion(request.Context(), id, userID, content, contentType, extension)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, version)
}

func (handler *Handler) downloadVersion(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	versionNumber, err := pathID(request, "version")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, contentType, err := handler.service.DownloadVersion(request.Context(), id, versionNumber, viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(content)
}
