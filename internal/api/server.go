// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/peerreview/journalhub/internal/core/field"
	"github.com/peerreview/journalhub/internal/core/journal"
	"github.com/peerreview/journalhub/internal/core/paper"
	"github.com/peerreview/journalhub/internal/core/review"
	"github.com/peerreview/journalhub/internal/feature"
	"github.com/peerreview/journalhub/internal/jobs"
	"github.com/peerreview/journalhub/internal/platform/config"
	"github.com/peerreview/journalhub/internal/platform/constants"
	"github.com/peerreview/journalhub/internal/platform/middleware"
	"github.com/peerreview/journalhub/internal/users/auth"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication lifecycle and the caller's profile.
	Auth *auth.Handler

	// Field manages the discipline/subfield taxonomy.
	Field *field.Handler

	// Paper handles papers, versions and the event timeline.
	Paper *paper.Handler

	// Review handles peer reviews.
	Review *review.Handler

	// Journal handles journals, memberships and submissions.
	Journal *journal.Handler

	// Feature exposes the feature-flag lifecycle to admins.
	Feature *feature.Handler

	// Jobs exposes the background-job queue.
	Jobs *jobs.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Domain route groups mounted under the versioned prefix. Each domain
	// exposes a plural collection router and a singular item router.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/user", h.Auth.UserRoutes())

		api.Route("/fields", h.Field.RegisterCollectionRoutes)
		api.Route("/field", h.Field.RegisterItemRoutes)

		api.Route("/papers", h.Paper.RegisterCollectionRoutes)
		api.Route("/paper", h.Paper.RegisterItemRoutes)

		api.Route("/reviews", h.Review.RegisterCollectionRoutes)
		api.Route("/review", h.Review.RegisterItemRoutes)

		api.Route("/journals", h.Journal.RegisterCollectionRoutes)
		api.Route("/journal", h.Journal.RegisterItemRoutes)

		api.Route("/features", h.Feature.RegisterRoutes)
		api.Route("/jobs", h.Jobs.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
