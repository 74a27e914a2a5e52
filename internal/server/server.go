// Package server exposes the news synthesis pipeline over HTTP: article
// search, paraphrasing and document export.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"minebrief/internal/config"
	"minebrief/internal/core"
	"minebrief/internal/logger"
	"minebrief/internal/sources"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Synthesizer turns a batch of source articles into one synthesized result.
type Synthesizer interface {
	Synthesize(ctx context.Context, articles []core.Article) (core.SynthesisResult, error)
}

// ProviderResolver resolves a search provider by name.
type ProviderResolver interface {
	For(name string) (sources.Provider, error)
}

// Server represents the HTTP server
type Server struct {
	router      *chi.Mux
	httpServer  *http.Server
	synthesizer Synthesizer
	providers   ProviderResolver
	config      config.Server
	log         *slog.Logger
}

// New creates a new HTTP server instance
func New(synthesizer Synthesizer, providers ProviderResolver, cfg config.Server) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		synthesizer: synthesizer,
		providers:   providers,
		config:      cfg,
		log:         logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Synthesis can chain several slow model calls, so keep this generous.
	s.router.Use(middleware.Timeout(120 * time.Second))

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api", s.handleAPIInfo)

	s.router.Route("/news", func(r chi.Router) {
		r.Get("/search", s.handleSearchNews)
		r.Post("/paraphrase", s.handleParaphrase)
	})

	s.router.Route("/export", func(r chi.Router) {
		r.Post("/docx", s.handleExportDOCX)
		r.Post("/pdf", s.handleExportPDF)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
