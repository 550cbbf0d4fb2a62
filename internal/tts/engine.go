package tts

import (
	"context"
)

// SynthesizeRequest contains parameters for speech synthesis.
type SynthesizeRequest struct {
	Text     string
	Voice    string
	Language Language
}

// Result represents synthesized speech output.
type Result struct {
	// PayloadBase64 is the base64-encoded raw PCM audio returned by the
	// synthesis service (16-bit little-endian mono at 24000 Hz).
	PayloadBase64 string
	// MIMEType is the audio MIME type reported by the service.
	MIMEType string
	// SpokenText is the text that was actually synthesized. When a
	// translation step ran, this is the translated text.
	SpokenText string
	// Translated reports whether SpokenText is a translation of the
	// request text.
	Translated bool
}

// Engine is the interface for speech synthesis backends.
type Engine interface {
	// Synthesize converts text to encoded audio.
	Synthesize(ctx context.Context, req SynthesizeRequest) (*Result, error)
	// Name returns the engine identifier.
	Name() string
}
