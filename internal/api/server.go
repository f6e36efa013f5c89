// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/tributestream/internal/auth"
	"github.com/taibuivan/tributestream/internal/cms/funeralhome"
	"github.com/taibuivan/tributestream/internal/cms/tribute"
	"github.com/taibuivan/tributestream/internal/media"
	"github.com/taibuivan/tributestream/internal/platform/config"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/metrics"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	"github.com/taibuivan/tributestream/internal/platform/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when the upstream and optional stores answer.
	Readiness http.HandlerFunc

	Auth         *auth.Handler
	FuneralHomes *funeralhome.Handler
	Tributes     *tribute.Handler
	Media        *media.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	Sessions  session.Store
	Inspector middleware.TokenInspector
	Metrics   *metrics.Registry
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := NewRouter(context, cfg, log, deps, h)

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

// NewRouter builds the routing tree on its own so it can be exercised
// without a listening socket.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(deps.Sessions, deps.Inspector))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/funeral-homes", h.FuneralHomes.Routes())
		api.Mount("/tributes", h.Tributes.Routes())
		api.Mount("/upload", h.Media.Routes())
	})

	return r
}

// # Server Lifecycle

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
