package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mozhilabs/mozhi/internal/audio"
	"github.com/mozhilabs/mozhi/internal/generation"
	"github.com/mozhilabs/mozhi/internal/tts"
	"github.com/mozhilabs/mozhi/internal/wav"
)

// SpeakRequest represents the request body for /v1/speak.
type SpeakRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}

// SpeakResponse represents the response body for /v1/speak. Audio is a
// base64-encoded WAV file.
type SpeakResponse struct {
	ID            string `json:"id"`
	Audio         string `json:"audio"`
	MIMEType      string `json:"mime_type"`
	SampleRate    int    `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
	DurationMS    int64  `json:"duration_ms"`
	Voice         string `json:"voice"`
	Language      string `json:"language"`
	Translated    bool   `json:"translated"`
	SpokenText    string `json:"spoken_text,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the response body for /v1/healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// GenerationResponse represents the response body for /v1/generation.
type GenerationResponse struct {
	Status     string `json:"status"`
	ID         string `json:"id,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	SizeBytes  int    `json:"size_bytes,omitempty"`
	Voice      string `json:"voice,omitempty"`
	Language   string `json:"language,omitempty"`
	Translated bool   `json:"translated,omitempty"`
	SpokenText string `json:"spoken_text,omitempty"`
	Error      string `json:"error,omitempty"`
}

// VoicesResponse represents the response body for /v1/voices.
type VoicesResponse struct {
	Voices  []tts.Voice `json:"voices"`
	Default string      `json:"default"`
}

// LanguagesResponse represents the response body for /v1/languages.
type LanguagesResponse struct {
	Languages []tts.LanguageInfo `json:"languages"`
	Default   string             `json:"default"`
}

// handleHealthz handles GET /v1/healthz requests.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// handleVoices handles GET /v1/voices requests.
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VoicesResponse{
		Voices:  tts.Voices(),
		Default: s.cfg.DefaultVoice,
	})
}

// handleLanguages handles GET /v1/languages requests.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LanguagesResponse{
		Languages: tts.Languages(),
		Default:   string(tts.DefaultLanguage),
	})
}

// handleSpeak handles POST /v1/speak requests. The call is synchronous:
// it runs the translation and synthesis calls and returns the finished
// WAV audio in the response body.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("failed to decode speak request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid JSON body"})
		return
	}

	// Validate text is present
	if strings.TrimSpace(req.Text) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "text is required"})
		return
	}

	// Validate text length
	if len(req.Text) > s.cfg.MaxTextLength {
		s.logger.Warn("text exceeds max length", "length", len(req.Text), "max", s.cfg.MaxTextLength)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "text exceeds maximum length"})
		return
	}

	// Use default voice if not provided
	voice := req.Voice
	if voice == "" || voice == "default" {
		voice = s.cfg.DefaultVoice
	} else if !tts.ValidVoice(voice) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "unknown voice"})
		return
	}

	lang, err := tts.ParseLanguage(req.Language)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "unknown language"})
		return
	}

	// Claim the single generation slot. The UI disables submission while
	// a request is in flight, so a conflict here means a second client.
	id, err := s.tracker.Begin(req.Text)
	if err != nil {
		if errors.Is(err, generation.ErrInFlight) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
		return
	}

	start := time.Now()

	result, err := s.engine.Synthesize(r.Context(), tts.SynthesizeRequest{
		Text:     req.Text,
		Voice:    voice,
		Language: lang,
	})
	if err != nil {
		s.failSpeak(w, id, lang, start, err)
		return
	}

	pcm, err := audio.DecodePayload(result.PayloadBase64)
	if err != nil {
		s.failSpeak(w, id, lang, start, err)
		return
	}

	wavBytes := wav.WrapRawPCM(pcm, audio.SampleRate, audio.Channels, audio.BitsPerSample)

	res := &generation.Result{
		ID:            id,
		Text:          req.Text,
		SpokenText:    result.SpokenText,
		Voice:         voice,
		Language:      string(lang),
		Translated:    result.Translated,
		WAV:           wavBytes,
		MIMEType:      "audio/wav",
		SampleRate:    audio.SampleRate,
		Channels:      audio.Channels,
		BitsPerSample: audio.BitsPerSample,
		Duration:      audio.Duration(pcm),
		CreatedAt:     time.Now(),
	}

	if err := s.tracker.Complete(res); err != nil {
		s.logger.Error("failed to record generation result", "generation_id", id, "error", err)
	}

	elapsed := time.Since(start)
	s.metrics.RecordSpeakRequest(string(lang), true, elapsed.Seconds())
	s.metrics.RecordAudio(len(wavBytes))
	if lang == tts.LanguageMalayalam && !result.Translated {
		s.metrics.RecordTranslationFallback()
	}

	s.logger.Info("speech generated",
		"generation_id", id,
		"text_length", len(req.Text),
		"voice", voice,
		"language", lang,
		"translated", result.Translated,
		"wav_bytes", len(wavBytes),
		"duration_ms", res.Duration.Milliseconds(),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	json.NewEncoder(w).Encode(SpeakResponse{
		ID:            id,
		Audio:         base64.StdEncoding.EncodeToString(wavBytes),
		MIMEType:      "audio/wav",
		SampleRate:    audio.SampleRate,
		Channels:      audio.Channels,
		BitsPerSample: audio.BitsPerSample,
		DurationMS:    res.Duration.Milliseconds(),
		Voice:         voice,
		Language:      string(lang),
		Translated:    result.Translated,
		SpokenText:    result.SpokenText,
	})
}

// failSpeak records a failed generation and writes the error response.
// Known synthesis failures keep their sentinel message; anything else is
// surfaced with its own message, or a generic one when there is none.
func (s *Server) failSpeak(w http.ResponseWriter, id string, lang tts.Language, start time.Time, err error) {
	status := http.StatusBadGateway
	msg := err.Error()

	switch {
	case errors.Is(err, tts.ErrNoCandidates):
		status = http.StatusUnprocessableEntity
		msg = tts.ErrNoCandidates.Error()
	case errors.Is(err, tts.ErrNoAudio):
		status = http.StatusUnprocessableEntity
		msg = tts.ErrNoAudio.Error()
	case errors.Is(err, tts.ErrServiceBusy):
		msg = tts.ErrServiceBusy.Error()
	default:
		if msg == "" {
			msg = "connection lost, try again"
		}
	}

	if failErr := s.tracker.Fail(id, msg); failErr != nil {
		s.logger.Error("failed to record generation failure", "generation_id", id, "error", failErr)
	}

	s.metrics.RecordSpeakRequest(string(lang), false, time.Since(start).Seconds())

	s.logger.Error("speech generation failed",
		"generation_id", id,
		"language", lang,
		"error", err,
	)

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// handleGeneration handles GET /v1/generation requests.
func (s *Server) handleGeneration(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	snap := s.tracker.Current()
	resp := GenerationResponse{
		Status: string(snap.Status),
		ID:     snap.ID,
	}

	switch snap.Status {
	case generation.StatusReady:
		resp.DurationMS = snap.Result.Duration.Milliseconds()
		resp.SizeBytes = len(snap.Result.WAV)
		resp.Voice = snap.Result.Voice
		resp.Language = snap.Result.Language
		resp.Translated = snap.Result.Translated
		resp.SpokenText = snap.Result.SpokenText
	case generation.StatusFailed:
		resp.Error = snap.Err
	}

	json.NewEncoder(w).Encode(resp)
}

// handleGenerationAudio handles GET /v1/generation/audio requests,
// serving the current WAV file as a download.
func (s *Server) handleGenerationAudio(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Current()
	if snap.Status != generation.StatusReady || snap.Result == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "no audio is ready"})
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "speech-"+snap.ID+".wav"))
	w.Header().Set("Content-Length", strconv.Itoa(len(snap.Result.WAV)))
	w.Write(snap.Result.WAV)
}

// handleClearGeneration handles DELETE /v1/generation requests.
func (s *Server) handleClearGeneration(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Clear(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
