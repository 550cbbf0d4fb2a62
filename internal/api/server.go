package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mozhilabs/mozhi/internal/config"
	"github.com/mozhilabs/mozhi/internal/generation"
	"github.com/mozhilabs/mozhi/internal/metrics"
	"github.com/mozhilabs/mozhi/internal/tts"
)

// Server handles HTTP API requests.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	engine  tts.Engine
	tracker *generation.Tracker
	metrics *metrics.Metrics
}

// New creates a new API server.
func New(cfg *config.Config, logger *slog.Logger, engine tts.Engine, tracker *generation.Tracker, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		engine:  engine,
		tracker: tracker,
		metrics: m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/voices", s.handleVoices)
	mux.HandleFunc("GET /v1/languages", s.handleLanguages)
	mux.HandleFunc("POST /v1/speak", s.withAuth(s.handleSpeak))
	mux.HandleFunc("GET /v1/generation", s.withAuth(s.handleGeneration))
	mux.HandleFunc("GET /v1/generation/audio", s.withAuth(s.handleGenerationAudio))
	mux.HandleFunc("DELETE /v1/generation", s.withAuth(s.handleClearGeneration))
	mux.Handle("GET /metrics", m.Handler())

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// The speak handler blocks on the upstream synthesis call, so the
		// write timeout must outlast the request timeout.
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
