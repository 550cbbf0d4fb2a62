package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mozhilabs/mozhi/internal/api"
	"github.com/mozhilabs/mozhi/internal/config"
	"github.com/mozhilabs/mozhi/internal/gemini"
	"github.com/mozhilabs/mozhi/internal/generation"
	"github.com/mozhilabs/mozhi/internal/logging"
	"github.com/mozhilabs/mozhi/internal/metrics"
	"github.com/mozhilabs/mozhi/internal/tts"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		// Use stderr before logger is initialized
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting mozhid", "version", "0.1.0")

	// Warn if bearer token auth is disabled
	if cfg.AuthDisabled() {
		logger.Warn("HTTP bearer authentication is disabled (BEARER_TOKEN is empty)")
	}

	// Log loaded configuration (without sensitive values)
	logger.Info("configuration loaded",
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"http_port", cfg.HTTPPort,
		"speech_model", cfg.SpeechModel,
		"translate_model", cfg.TranslateModel,
		"default_voice", cfg.DefaultVoice,
		"max_text_length", cfg.MaxTextLength,
		"request_timeout", cfg.RequestTimeout,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig.String())
		cancel()
	}()

	// Initialize the Gemini client and speech engine
	geminiClient, err := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.RequestTimeout, logger)
	if err != nil {
		logger.Error("failed to create Gemini client", "error", err)
		os.Exit(1)
	}

	registry := tts.NewRegistry()
	engine := tts.NewGeminiEngine(geminiClient, tts.GeminiConfig{
		SpeechModel:    cfg.SpeechModel,
		TranslateModel: cfg.TranslateModel,
		DefaultVoice:   cfg.DefaultVoice,
	}, logger)
	if err := registry.Register(engine); err != nil {
		logger.Error("failed to register speech engine", "error", err)
		os.Exit(1)
	}
	logger.Info("speech engine registered",
		"engine", engine.Name(),
		"speech_model", cfg.SpeechModel,
		"translate_model", cfg.TranslateModel,
	)

	defaultEngine, err := registry.Default()
	if err != nil {
		logger.Error("no speech engine available", "error", err)
		os.Exit(1)
	}

	// Single generation slot shared by the API handlers
	tracker := generation.NewTracker(logger)

	// Create and start HTTP server
	server := api.New(cfg, logger, defaultEngine, tracker, metrics.New())

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
}
