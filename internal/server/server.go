// Package server provides the HTTP API for tipsearch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bdbt/tipsearch/internal/config"
	"github.com/bdbt/tipsearch/internal/search"
	"github.com/bdbt/tipsearch/internal/storage"
)

// Server is the HTTP server for the tipsearch API.
type Server struct {
	engine  *search.Engine
	storage storage.Storage
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *search.Engine, store storage.Storage, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		engine:  engine,
		storage: store,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/suggest", s.handleSuggest)
	r.Get("/api/v1/trending", s.handleTrending)
	r.Post("/api/v1/search/click", s.handleClick)
	r.Post("/api/v1/tips", s.handleUpsertTip)
	r.Get("/api/v1/tips/{id}", s.handleGetTip)
	r.Delete("/api/v1/tips/{id}", s.handleDeleteTip)
	r.Post("/api/v1/reindex", s.handleReindex)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
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
