// Package api provides the HTTP REST API.
//
// Endpoints:
//
//	POST /api/v1/ai_chat        - conversational turn with optional history
//	POST /api/v1/session-title  - three-word title for a conversation
//	GET  /health                - liveness probe
//	GET  /ready                 - readiness probe (vector backend check)
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (request ID, logging, recovery)
//   - chat.go: conversational endpoint
//   - title.go: session title endpoint
//   - health.go: health check endpoints
//   - errors.go: pipeline error to HTTP status mapping
//   - response.go: JSON response helpers
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/chat"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/title"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout guards against Slowloris-style slow header attacks.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is generous because model calls dominate response time.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

// ServerConfig contains the dependencies for the API server.
type ServerConfig struct {
	Chat    *chat.Chat     // Required
	Titles  *title.Service // Required
	Checker ReadyChecker   // Required: vector backend for /ready
	Logger  log.Logger
}

// Server is the HTTP server.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Chat == nil {
		return nil, errors.New("chat pipeline is required")
	}
	if cfg.Titles == nil {
		return nil, errors.New("title service is required")
	}
	if cfg.Checker == nil {
		return nil, errors.New("ready checker is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	mux := http.NewServeMux()
	NewChatHandler(cfg.Chat, logger).RegisterRoutes(mux)
	NewTitleHandler(cfg.Titles, logger).RegisterRoutes(mux)
	NewHealthHandler(cfg.Checker, logger).RegisterRoutes(mux)

	return &Server{mux: mux, logger: logger}, nil
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → requestID → logging → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware,
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
