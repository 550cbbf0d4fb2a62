// Package audio handles the raw PCM payloads returned by speech synthesis.
package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

const (
	// SampleRate is the sample rate of synthesized speech (24 kHz).
	SampleRate = 24000
	// Channels is the channel count of synthesized speech (mono).
	Channels = 1
	// BitsPerSample is the bit depth of synthesized speech (16-bit).
	BitsPerSample = 16

	// BytesPerSecond is the PCM data rate of the fixed output format.
	BytesPerSecond = SampleRate * Channels * BitsPerSample / 8
)

// ErrInvalidPayload is returned when a base64 audio payload cannot be decoded.
var ErrInvalidPayload = errors.New("invalid base64 audio payload")

// DecodePayload decodes the base64-encoded PCM payload carried in a speech
// response. Standard alphabet with padding; anything else fails.
func DecodePayload(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

// Duration returns the playback time of raw PCM data in the fixed output
// format.
func Duration(pcm []byte) time.Duration {
	return time.Duration(len(pcm)) * time.Second / BytesPerSecond
}
