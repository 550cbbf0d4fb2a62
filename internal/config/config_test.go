package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear relevant env vars to test defaults
	envVars := []string{
		"GEMINI_BASE_URL", "SPEECH_MODEL", "TRANSLATE_MODEL",
		"HTTP_PORT", "BEARER_TOKEN", "DEFAULT_VOICE",
		"MAX_TEXT_LENGTH", "REQUEST_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	os.Setenv("GEMINI_API_KEY", "test-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check defaults
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("GeminiBaseURL = %s, want default endpoint", cfg.GeminiBaseURL)
	}
	if cfg.SpeechModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("SpeechModel = %s, want gemini-2.5-flash-preview-tts", cfg.SpeechModel)
	}
	if cfg.TranslateModel != "gemini-2.5-flash" {
		t.Errorf("TranslateModel = %s, want gemini-2.5-flash", cfg.TranslateModel)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.DefaultVoice != "Zephyr" {
		t.Errorf("DefaultVoice = %s, want Zephyr", cfg.DefaultVoice)
	}
	if cfg.MaxTextLength != 500 {
		t.Errorf("MaxTextLength = %d, want 500", cfg.MaxTextLength)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %s, want text", cfg.LogFormat)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "secret-key")
	os.Setenv("GEMINI_BASE_URL", "http://localhost:9999")
	os.Setenv("SPEECH_MODEL", "custom-tts-model")
	os.Setenv("TRANSLATE_MODEL", "custom-translate-model")
	os.Setenv("HTTP_PORT", "9090")
	os.Setenv("BEARER_TOKEN", "secret")
	os.Setenv("DEFAULT_VOICE", "Puck")
	os.Setenv("MAX_TEXT_LENGTH", "200")
	os.Setenv("REQUEST_TIMEOUT", "90s")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")

	defer func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("GEMINI_BASE_URL")
		os.Unsetenv("SPEECH_MODEL")
		os.Unsetenv("TRANSLATE_MODEL")
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("BEARER_TOKEN")
		os.Unsetenv("DEFAULT_VOICE")
		os.Unsetenv("MAX_TEXT_LENGTH")
		os.Unsetenv("REQUEST_TIMEOUT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GeminiAPIKey != "secret-key" {
		t.Errorf("GeminiAPIKey = %s, want secret-key", cfg.GeminiAPIKey)
	}
	if cfg.GeminiBaseURL != "http://localhost:9999" {
		t.Errorf("GeminiBaseURL = %s, want http://localhost:9999", cfg.GeminiBaseURL)
	}
	if cfg.SpeechModel != "custom-tts-model" {
		t.Errorf("SpeechModel = %s, want custom-tts-model", cfg.SpeechModel)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.DefaultVoice != "Puck" {
		t.Errorf("DefaultVoice = %s, want Puck", cfg.DefaultVoice)
	}
	if cfg.MaxTextLength != 200 {
		t.Errorf("MaxTextLength = %d, want 200", cfg.MaxTextLength)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want 90s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", cfg.LogFormat)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error when GEMINI_API_KEY is unset")
	}
}

func validConfig() *Config {
	return &Config{
		GeminiAPIKey:   "test-key",
		GeminiBaseURL:  "https://generativelanguage.googleapis.com",
		SpeechModel:    "gemini-2.5-flash-preview-tts",
		TranslateModel: "gemini-2.5-flash",
		HTTPPort:       8080,
		DefaultVoice:   "Zephyr",
		MaxTextLength:  500,
		RequestTimeout: 60 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.GeminiAPIKey = "" }},
		{"empty base url", func(c *Config) { c.GeminiBaseURL = "" }},
		{"empty speech model", func(c *Config) { c.SpeechModel = "" }},
		{"empty translate model", func(c *Config) { c.TranslateModel = "" }},
		{"zero http port", func(c *Config) { c.HTTPPort = 0 }},
		{"http port too large", func(c *Config) { c.HTTPPort = 70000 }},
		{"zero max text length", func(c *Config) { c.MaxTextLength = 0 }},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"invalid log level", func(c *Config) { c.LogLevel = "invalid" }},
		{"invalid log format", func(c *Config) { c.LogFormat = "invalid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() unexpected error for valid config: %v", err)
	}
}

func TestAuthDisabled(t *testing.T) {
	cfg := validConfig()

	cfg.BearerToken = ""
	if !cfg.AuthDisabled() {
		t.Error("AuthDisabled() = false for empty token, want true")
	}

	cfg.BearerToken = "secret"
	if cfg.AuthDisabled() {
		t.Error("AuthDisabled() = true for set token, want false")
	}
}

func TestGetEnvString(t *testing.T) {
	os.Setenv("TEST_STRING", "value")
	defer os.Unsetenv("TEST_STRING")

	if got := getEnvString("TEST_STRING", "default"); got != "value" {
		t.Errorf("getEnvString() = %s, want value", got)
	}

	if got := getEnvString("NONEXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %s, want default", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")

	if got := getEnvInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvInt() = %d, want 42", got)
	}

	if got := getEnvInt("NONEXISTENT", 10); got != 10 {
		t.Errorf("getEnvInt() = %d, want 10", got)
	}

	os.Setenv("TEST_INT_INVALID", "not-a-number")
	defer os.Unsetenv("TEST_INT_INVALID")

	if got := getEnvInt("TEST_INT_INVALID", 10); got != 10 {
		t.Errorf("getEnvInt() = %d, want 10 for invalid input", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "5m")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvDuration("TEST_DURATION", time.Second); got != 5*time.Minute {
		t.Errorf("getEnvDuration() = %v, want 5m", got)
	}

	if got := getEnvDuration("NONEXISTENT", 10*time.Second); got != 10*time.Second {
		t.Errorf("getEnvDuration() = %v, want 10s", got)
	}

	os.Setenv("TEST_DURATION_INVALID", "not-a-duration")
	defer os.Unsetenv("TEST_DURATION_INVALID")

	if got := getEnvDuration("TEST_DURATION_INVALID", 10*time.Second); got != 10*time.Second {
		t.Errorf("getEnvDuration() = %v, want 10s for invalid input", got)
	}
}
