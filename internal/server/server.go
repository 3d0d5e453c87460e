// Package server provides the HTTP API for browsing and triggering benchmark runs.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/config"
	"github.com/4zj9/pairbench/internal/models"
	"github.com/4zj9/pairbench/internal/storage"
)

// RunFunc executes a full benchmark (load, run variants, persist) and returns
// the resulting run. Wired in by the caller so the server stays free of
// pipeline dependencies.
type RunFunc func(ctx context.Context) (*models.Run, error)

// Server is the HTTP server for the pairbench API.
type Server struct {
	storage      storage.Storage
	runBenchmark RunFunc
	config       *config.Config
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates a server with the given dependencies. runBenchmark may be
// nil, in which case POST /api/v1/benchmark is rejected.
func NewServer(store storage.Storage, runBenchmark RunFunc, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		storage:      store,
		runBenchmark: runBenchmark,
		config:       cfg,
		logger:       logger,
	}
}

// routes builds the chi router for the API.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/v1/runs", s.handleListRuns)
	r.Get("/api/v1/runs/{id}", s.handleGetRun)
	r.Delete("/api/v1/runs/{id}", s.handleDeleteRun)
	r.Post("/api/v1/benchmark", s.handleBenchmark)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
