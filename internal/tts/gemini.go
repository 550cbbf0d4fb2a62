package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mozhilabs/mozhi/internal/gemini"
)

var (
	// ErrEmptyText is returned when a request carries no text to speak.
	ErrEmptyText = errors.New("empty text")
	// ErrNoCandidates is returned when the synthesis response carries no
	// candidates, typically because the request was blocked.
	ErrNoCandidates = errors.New("request blocked or returned no results, try different wording")
	// ErrNoAudio is returned when the synthesis response carries no
	// audio part.
	ErrNoAudio = errors.New("speech engine could not process this text, try simpler wording")
	// ErrServiceBusy is returned when the synthesis service reports a
	// transient server-side failure.
	ErrServiceBusy = errors.New("transient server error, please try again")
)

const (
	// DefaultSpeechModel is the Gemini model used for speech synthesis.
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	// DefaultTranslateModel is the Gemini model used for translation.
	DefaultTranslateModel = "gemini-2.5-flash"

	// Near-deterministic setting for translation requests.
	translateTemperature = 0.1

	translatePrompt = "Translate the following English text to Malayalam. Return only the Malayalam translation, nothing else:\n\n"
	fallbackPrompt  = "Read the following in Malayalam: "
)

// GeminiConfig holds configuration for the Gemini speech engine.
type GeminiConfig struct {
	// SpeechModel is the model used for speech synthesis.
	SpeechModel string
	// TranslateModel is the model used for translation.
	TranslateModel string
	// DefaultVoice is used when a request does not name a voice.
	DefaultVoice string
}

// GeminiEngine implements the Engine interface using the Gemini
// generateContent API: an optional translation call followed by a
// speech synthesis call.
type GeminiEngine struct {
	config GeminiConfig
	client *gemini.Client
	logger *slog.Logger
}

// NewGeminiEngine creates a new Gemini speech engine.
func NewGeminiEngine(client *gemini.Client, cfg GeminiConfig, logger *slog.Logger) *GeminiEngine {
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = DefaultSpeechModel
	}
	if cfg.TranslateModel == "" {
		cfg.TranslateModel = DefaultTranslateModel
	}
	if cfg.DefaultVoice == "" {
		cfg.DefaultVoice = DefaultVoice
	}

	return &GeminiEngine{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// Name returns the engine identifier.
func (g *GeminiEngine) Name() string {
	return "gemini"
}

// Synthesize converts text to encoded audio. For Malayalam requests the
// text is translated first; translation failure is not fatal and falls
// back to a read-aloud instruction around the original text.
func (g *GeminiEngine) Synthesize(ctx context.Context, req SynthesizeRequest) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	voice := req.Voice
	if voice == "" || voice == "default" {
		voice = g.config.DefaultVoice
	}

	spoken := text
	translated := false

	if req.Language == LanguageMalayalam {
		translation, err := g.translate(ctx, text)
		switch {
		case err != nil:
			g.logger.Warn("translation failed, reading original text with instruction",
				"error", err,
			)
			spoken = fallbackPrompt + text
		case translation == "":
			g.logger.Warn("translation returned no text, reading original text with instruction")
			spoken = fallbackPrompt + text
		default:
			spoken = translation
			translated = true
		}
	}

	payload, mimeType, err := g.speak(ctx, spoken, voice)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("synthesis complete",
		"voice", voice,
		"language", req.Language,
		"translated", translated,
		"payload_length", len(payload),
	)

	return &Result{
		PayloadBase64: payload,
		MIMEType:      mimeType,
		SpokenText:    spoken,
		Translated:    translated,
	}, nil
}

// translate asks the translation model for a Malayalam rendering of text.
func (g *GeminiEngine) translate(ctx context.Context, text string) (string, error) {
	g.logger.Debug("requesting translation",
		"model", g.config.TranslateModel,
		"text_length", len(text),
	)

	temp := translateTemperature
	resp, err := g.client.GenerateContent(ctx, g.config.TranslateModel, &gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: translatePrompt + text}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature: &temp,
		},
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.FirstText()), nil
}

// speak requests an audio-modality response for text and extracts the
// base64 payload of the first audio part.
func (g *GeminiEngine) speak(ctx context.Context, text, voice string) (payload, mimeType string, err error) {
	g.logger.Debug("requesting speech synthesis",
		"model", g.config.SpeechModel,
		"voice", voice,
		"text_length", len(text),
	)

	resp, err := g.client.GenerateContent(ctx, g.config.SpeechModel, &gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: text}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &gemini.SpeechConfig{
				VoiceConfig: gemini.VoiceConfig{
					PrebuiltVoiceConfig: gemini.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	})
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) && apiErr.Temporary() {
			return "", "", fmt.Errorf("%w: %v", ErrServiceBusy, err)
		}
		return "", "", err
	}

	if len(resp.Candidates) == 0 {
		return "", "", ErrNoCandidates
	}

	inline := resp.FirstAudio()
	if inline == nil {
		return "", "", ErrNoAudio
	}

	return inline.Data, inline.MIMEType, nil
}
