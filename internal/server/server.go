// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the catalog and the idea generator as a JSON API.
// Every response uses the Envelope shape; failures carry an error code
// derived from the sentinel errors in pkg/types.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/catalog"
	"github.com/pdiddy/idea-generator/internal/generate"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// DefaultAddr is used when configuration names no listen address.
const DefaultAddr = ":8001"

// shutdownTimeout bounds how long Run waits for in-flight requests.
var shutdownTimeout = 10 * time.Second

// Server routes API requests to the catalog and the generator.
type Server struct {
	repo    *catalog.Repository
	gen     *generate.Generator
	cfg     types.ServerConfig
	userID  string
	logger  *zap.Logger
	metrics *Metrics
}

// New returns a Server. An empty userID falls back to the default user and
// a nil metrics value gets a fresh registry.
func New(repo *catalog.Repository, gen *generate.Generator, cfg types.ServerConfig, userID string, logger *zap.Logger, metrics *Metrics) *Server {
	if userID == "" {
		userID = types.DefaultUserID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{
		repo:    repo,
		gen:     gen,
		cfg:     cfg,
		userID:  userID,
		logger:  logger,
		metrics: metrics,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.metrics.Instrument)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/components", func(r chi.Router) {
			r.Get("/", s.handleListComponents)
			r.Post("/", s.handleAddComponent)
			r.Post("/seed", s.handleSeedComponents)
			r.Get("/category/{category}", s.handleComponentsByCategory)
			r.Get("/{id}", s.handleGetComponent)
			r.Put("/{id}", s.handleUpdateComponent)
			r.Delete("/{id}", s.handleDeleteComponent)
		})

		r.Route("/ideas", func(r chi.Router) {
			r.Get("/", s.handleListIdeas)
			r.Post("/", s.handleSaveIdea)
			r.Get("/search", s.handleSearchIdeas)
			r.Get("/{id}", s.handleGetIdea)
			r.Put("/{id}", s.handleUpdateIdea)
			r.Delete("/{id}", s.handleDeleteIdea)
			r.Patch("/{id}/favorite", s.handleSetFavorite)
			r.Post("/{id}/toggle-favorite", s.handleToggleFavorite)
			r.Post("/{id}/enhance", s.handleEnhanceIdea)
		})

		r.Post("/generate-ideas", s.handleGenerateIdeas)
		r.Get("/suggestions", s.handleSuggestions)

		r.Get("/preferences", s.handleGetPreferences)
		r.Post("/preferences", s.handleSavePreferences)

		r.Get("/stats", s.handleStats)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
