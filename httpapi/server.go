// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package httpapi exposes the search core over a JSON HTTP surface:
// semantic search with filters and optional distance ranking, store
// listings and statistics, and result export in JSON or XLSX form.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/geo"
	"github.com/poiesic/servit/search"
	"github.com/poiesic/servit/storage"
)

var (
	// ErrSearcherRequired is returned when no searcher is provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrServiceRepositoryRequired is returned when no service repository
	// is provided.
	ErrServiceRepositoryRequired = errors.New("service repository required")
)

// Server serves the JSON API over a search core and its record store.
type Server struct {
	searcher    *search.Searcher
	records     storage.ServiceRepository
	recommender ai.Recommender
	ranker      *geo.Ranker
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRecommender enables AI recommendations on search responses. Without
// one, requests asking for a recommendation report it as unavailable.
func WithRecommender(recommender ai.Recommender) Option {
	return func(s *Server) error {
		s.recommender = recommender
		return nil
	}
}

// WithRanker sets the distance ranker. Default uses the built-in
// gazetteer.
func WithRanker(ranker *geo.Ranker) Option {
	return func(s *Server) error {
		if ranker == nil {
			ranker = geo.NewRanker(nil)
		}
		s.ranker = ranker
		return nil
	}
}

// NewServer creates an API server over the given search core and record
// store.
func NewServer(
	searcher *search.Searcher,
	records storage.ServiceRepository,
	opts ...Option,
) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if records == nil {
		return nil, ErrServiceRepositoryRequired
	}

	s := &Server{
		searcher: searcher,
		records:  records,
		ranker:   geo.NewRanker(nil),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Router builds the chi router with the API routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The API is consumed by browser frontends on other origins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Get("/services", s.handleServices)
		r.Get("/stats", s.handleStats)
		r.Get("/export", s.handleExport)
	})

	return r
}

// ListenAndServe runs the server on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:        addr,
		Handler:     s.Router(),
		ReadTimeout: 15 * time.Second,
		// Recommendation calls go out to an LLM and can take a while
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
