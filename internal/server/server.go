// Package server packages the annotation pipeline behind a small HTTP
// API. The pipeline core itself stays network-free.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wmshort/cltkv1/internal/config"
	"github.com/wmshort/cltkv1/internal/embeddings"
	"github.com/wmshort/cltkv1/internal/logger"
)

// Server exposes document annotation over HTTP.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	factory embeddings.BackendFactory
	router  *mux.Router
	server  *http.Server
	limiter *rateLimiter

	// Annotation processes cache their backend per instance and are not
	// safe for concurrent use, so the server keeps one entry per
	// (language, variant) and serializes runs on it.
	mu        sync.Mutex
	processes map[string]*processEntry
}

type processEntry struct {
	mu      sync.Mutex
	process *embeddings.Process
}

// New creates an annotation server.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	factory := embeddings.NewFactory(embeddings.FactoryConfig{
		ModelsDir:      cfg.Models.Dir,
		DefaultVariant: embeddings.Variant(cfg.Models.DefaultVariant),
		CacheEnabled:   cfg.Cache.Enabled,
		CacheURL:       cfg.Cache.URL,
		CacheTTL:       cfg.Cache.TTL,
	}, log.WithComponent("embeddings").Logger)

	s := &Server{
		config:    cfg,
		logger:    log.WithComponent("server"),
		factory:   factory,
		router:    mux.NewRouter(),
		processes: make(map[string]*processEntry),
	}

	if cfg.Server.RateLimit.Enabled {
		s.limiter = newRateLimiter(cfg.Server.RateLimit.RequestsPerMin, cfg.Server.RateLimit.Burst)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	if s.limiter != nil {
		api.Use(s.rateLimitMiddleware)
	}
	api.HandleFunc("/annotate", s.handleAnnotate).Methods("POST")
	api.HandleFunc("/languages", s.handleLanguages).Methods("GET")
}

// entryFor returns the cached process entry for a (language, variant)
// pair, creating the process lazily. Backend loading still happens on the
// entry's first run, not here.
func (s *Server) entryFor(cfg embeddings.Config) *processEntry {
	key := cfg.Language + ":" + string(cfg.Variant)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.processes[key]
	if !ok {
		entry = &processEntry{
			process: embeddings.NewProcess(cfg, s.factory, s.logger.Logger),
		}
		s.processes[key] = entry
	}
	return entry
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting annotation server",
		zap.Int("port", s.config.Server.Port),
		zap.String("models_dir", s.config.Models.Dir),
		zap.Bool("rate_limit", s.limiter != nil))
	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping annotation server")
	return s.server.Shutdown(ctx)
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// loggingMiddleware logs each API request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("API request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr))
		next.ServeHTTP(w, r)
	})
}
