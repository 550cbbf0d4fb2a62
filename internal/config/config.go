// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Gemini settings
	GeminiAPIKey   string
	GeminiBaseURL  string
	SpeechModel    string
	TranslateModel string

	// HTTP settings
	HTTPPort    int
	BearerToken string

	// Speech settings
	DefaultVoice  string
	MaxTextLength int

	// Behavior settings
	RequestTimeout time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Gemini settings (API key required)
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:  getEnvString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		SpeechModel:    getEnvString("SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		TranslateModel: getEnvString("TRANSLATE_MODEL", "gemini-2.5-flash"),

		// HTTP settings
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		BearerToken: os.Getenv("BEARER_TOKEN"),

		// Speech settings
		DefaultVoice:  getEnvString("DEFAULT_VOICE", "Zephyr"),
		MaxTextLength: getEnvInt("MAX_TEXT_LENGTH", 500),

		// Behavior settings
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),

		// Logging settings
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthDisabled returns true if bearer token authentication is disabled.
func (c *Config) AuthDisabled() bool {
	return c.BearerToken == ""
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}

	if c.GeminiBaseURL == "" {
		return errors.New("GEMINI_BASE_URL cannot be empty")
	}

	if c.SpeechModel == "" {
		return errors.New("SPEECH_MODEL cannot be empty")
	}

	if c.TranslateModel == "" {
		return errors.New("TRANSLATE_MODEL cannot be empty")
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return errors.New("HTTP_PORT must be between 1 and 65535")
	}

	if c.MaxTextLength < 1 {
		return errors.New("MAX_TEXT_LENGTH must be at least 1")
	}

	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return errors.New("LOG_FORMAT must be one of: text, json")
	}

	return nil
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
