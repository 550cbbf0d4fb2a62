package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mozhilabs/mozhi/internal/api"
	"github.com/mozhilabs/mozhi/internal/client"
	"github.com/mozhilabs/mozhi/internal/logging"
)

func main() {
	var (
		text          string
		voice         string
		language      string
		out           string
		server        string
		token         string
		timeout       time.Duration
		listVoices    bool
		listLanguages bool
	)

	flag.StringVar(&text, "text", "", "English text to speak")
	flag.StringVar(&voice, "voice", "", "Voice name (see -voices)")
	flag.StringVar(&language, "language", "ml", "Speech language: en or ml")
	flag.StringVar(&out, "out", "speech.wav", "Output WAV file")
	flag.StringVar(&server, "server", "http://localhost:8080", "mozhid server URL")
	flag.StringVar(&token, "token", os.Getenv("MOZHI_TOKEN"), "Bearer token (defaults to MOZHI_TOKEN)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Request timeout")
	flag.BoolVar(&listVoices, "voices", false, "List available voices and exit")
	flag.BoolVar(&listLanguages, "languages", false, "List available languages and exit")
	flag.Parse()

	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(server, token, timeout, logger)

	if listVoices {
		resp, err := c.Voices(ctx)
		if err != nil {
			logger.Error("failed to fetch voices", "error", err)
			os.Exit(1)
		}
		for _, v := range resp.Voices {
			marker := " "
			if v.Name == resp.Default {
				marker = "*"
			}
			fmt.Printf("%s %-15s %s\n", marker, v.Name, v.Description)
		}
		return
	}

	if listLanguages {
		resp, err := c.Languages(ctx)
		if err != nil {
			logger.Error("failed to fetch languages", "error", err)
			os.Exit(1)
		}
		for _, l := range resp.Languages {
			marker := " "
			if string(l.ID) == resp.Default {
				marker = "*"
			}
			fmt.Printf("%s %-4s %s\n", marker, l.ID, l.Name)
		}
		return
	}

	if text == "" {
		fmt.Fprintln(os.Stderr, "error: -text is required")
		flag.Usage()
		os.Exit(2)
	}

	resp, err := c.Speak(ctx, api.SpeakRequest{
		Text:     text,
		Voice:    voice,
		Language: language,
	})
	if err != nil {
		logger.Error("speech generation failed", "error", err)
		os.Exit(1)
	}

	wavBytes, err := base64.StdEncoding.DecodeString(resp.Audio)
	if err != nil {
		logger.Error("server returned malformed audio", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(out, wavBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "file", out, "error", err)
		os.Exit(1)
	}

	logger.Info("speech saved",
		"file", out,
		"bytes", len(wavBytes),
		"duration_ms", resp.DurationMS,
		"voice", resp.Voice,
		"language", resp.Language,
		"translated", resp.Translated,
	)

	if resp.Translated {
		fmt.Println(resp.SpokenText)
	}
}
