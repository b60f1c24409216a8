// Package api provides the HTTP API server and handlers for the Bibliotheca application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alawler14/Bibliotheca/internal/ratelimit"
	"github.com/alawler14/Bibliotheca/internal/service"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Search   *service.SearchService
	Tracking *service.TrackingService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	limiter  *ratelimit.Daily
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, limiter *ratelimit.Daily, logger *slog.Logger) *Server {
	s := &Server{
		services: services,
		limiter:  limiter,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("Bibliotheca API", Version)
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, config)

	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerBookRoutes()
	s.registerTrackingRoutes()
	s.registerCalendarRoutes()
	s.registerRateLimitRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the underlying huma API for OpenAPI generation and tests.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack. Order matters: the
// client identity must be resolved before the auth middleware and the
// rate limiter read it, and both must run before any handler.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"Retry-After",
		},
		MaxAge: 300,
	}))
	s.router.Use(clientIPMiddleware)
	s.router.Use(authMiddleware(s.services.Auth))
	s.router.Use(searchRateLimit(s.limiter, s.logger))
}
