// Package api - Thin HTTP layer over the billing engine.
// The API is only responsible for input ingestion, engine invocation and
// output serialization. It never prices anything itself.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"energy-billing/core/engine"
	"energy-billing/internal/logging"
)

// Config holds HTTP server configuration
type Config struct {
	// Addr to listen on
	Addr string

	// ReadTimeout for requests
	ReadTimeout time.Duration

	// WriteTimeout for responses
	WriteTimeout time.Duration

	// ShutdownTimeout bounds the graceful drain on stop
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the API server
type Server struct {
	handler *Handler
	engine  *engine.Engine
	mux     *http.ServeMux
	root    http.Handler
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(e *engine.Engine, version string) *Server {
	logger := logging.Named("api")
	s := &Server{
		handler: NewHandler(e, logger),
		engine:  e,
		mux:     http.NewServeMux(),
		version: version,
		logger:  logger,
	}

	s.registerRoutes()
	s.root = s.wrap(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /bills", s.handler.HandleBill)
	s.mux.HandleFunc("GET /tariff", s.handler.HandleTariff)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, &HealthResponse{
		Status:    "healthy",
		Version:   s.version,
		Tariff:    s.engine.Schedule().Name,
		Tolerance: s.engine.Tolerance().String(),
		Time:      time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, &VersionResponse{
		Version:    s.version,
		Engine:     "energy-billing",
		APIVersion: "v1",
	}, http.StatusOK)
}

func (s *Server) wrap(h http.Handler) http.Handler {
	h = s.loggingMiddleware(h)
	h = s.recoveryMiddleware(h)
	return requestIDMiddleware(h)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
