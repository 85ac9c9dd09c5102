// Package api provides the HTTP API server and handlers for Songboard.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/songboard/songboard-server/internal/service"
)

// Version reported by the API and the health endpoint.
const Version = "1.0.0"

// Options configures the HTTP surface.
type Options struct {
	ServerName  string
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog *service.CatalogService
	router  *chi.Mux
	api     huma.API
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(catalog *service.CatalogService, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		catalog: catalog,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	if opts.RateRPS > 0 {
		s.limiter = NewRateLimiter(opts.RateRPS, opts.RateBurst)
	}

	s.setupMiddleware(opts)

	name := opts.ServerName
	if name == "" {
		name = "Songboard API"
	}
	humaConfig := huma.DefaultConfig(name, Version)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if len(opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	s.router.Use(s.rateLimitMiddleware)
}
