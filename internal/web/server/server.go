// Package server exposes a read-only HTTP introspection API over a
// descriptor registry.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/apimeta-io/apimeta/internal/cache"
	"github.com/apimeta-io/apimeta/internal/resource"
	"github.com/apimeta-io/apimeta/internal/web/auth"
	"github.com/apimeta-io/apimeta/internal/web/middleware"
)

// Config holds server configuration
type Config struct {
	// Address is the server listen address (e.g., ":8080")
	Address string

	// APIPrefix is prepended to all routes (e.g., "/api")
	APIPrefix string

	// AuthSecret enables bearer JWT validation when non-empty
	AuthSecret string
	// AuthTokenTTL is the lifetime of generated tokens
	AuthTokenTTL time.Duration

	// Timeouts
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration

	MaxHeaderBytes int
}

// DefaultConfig returns a production-ready server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		AuthTokenTTL:      time.Hour,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Server serves descriptor metadata over HTTP. The registry can be
// swapped at runtime by the descriptor watcher; requests always see a
// complete registry, never a partially reloaded one.
type Server struct {
	config     *Config
	httpServer *http.Server
	logger     *zap.Logger
	store      *cache.DescriptorStore

	mu       sync.RWMutex
	registry *resource.Registry
}

// New creates a new introspection server. store may be nil to disable
// descriptor caching.
func New(config *Config, registry *resource.Registry, store *cache.DescriptorStore, logger *zap.Logger) (*Server, error) {
	if config == nil {
		return nil, fmt.Errorf("server config cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config:   config,
		logger:   logger,
		store:    store,
		registry: registry,
	}

	s.httpServer = &http.Server{
		Addr:              config.Address,
		Handler:           s.buildHandler(),
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		MaxHeaderBytes:    config.MaxHeaderBytes,
	}

	return s, nil
}

// buildHandler assembles the chi router with the middleware stack
func (s *Server) buildHandler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(s.logger))
	if s.config.AuthSecret != "" {
		svc := auth.NewService(s.config.AuthSecret, s.config.AuthTokenTTL)
		r.Use(middleware.BearerAuth(svc))
	}

	prefix := s.config.APIPrefix
	if prefix == "" {
		prefix = "/"
	}
	r.Route(prefix, func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", s.handleListResources)
			r.Get("/{name}", s.handleGetResource)
			r.Get("/{name}/routes", s.handleGetRoutes)
		})
	})

	return r
}

// Handler returns the assembled HTTP handler (useful for tests)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetRegistry atomically swaps the registry served by the API
func (s *Server) SetRegistry(registry *resource.Registry) {
	s.mu.Lock()
	s.registry = registry
	s.mu.Unlock()
}

// currentRegistry returns the registry snapshot for a request
func (s *Server) currentRegistry() *resource.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe() error {
	s.logger.Info("introspection server listening", zap.String("address", s.config.Address))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Close immediately closes the server
func (s *Server) Close() error {
	return s.httpServer.Close()
}
