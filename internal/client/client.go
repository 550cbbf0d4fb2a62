package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mozhilabs/mozhi/internal/api"
)

// Client is an HTTP client for the mozhi speech service.
type Client struct {
	baseURL     string
	bearerToken string
	logger      *slog.Logger
	httpClient  *http.Client
}

// New creates a client for the service at baseURL. An empty bearerToken
// disables authentication.
func New(baseURL, bearerToken string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		bearerToken: bearerToken,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Speak requests speech generation and returns the finished audio. The
// call blocks until the service has synthesized the full WAV file.
func (c *Client) Speak(ctx context.Context, req api.SpeakRequest) (*api.SpeakResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.Debug("sending speak request",
		"text_length", len(req.Text),
		"voice", req.Voice,
		"language", req.Language,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speak", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.bearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var speakResp api.SpeakResponse
	if err := json.NewDecoder(resp.Body).Decode(&speakResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("speak response received",
		"generation_id", speakResp.ID,
		"duration_ms", speakResp.DurationMS,
		"translated", speakResp.Translated,
	)

	return &speakResp, nil
}

// Voices fetches the service's voice catalog.
func (c *Client) Voices(ctx context.Context) (*api.VoicesResponse, error) {
	var resp api.VoicesResponse
	if err := c.get(ctx, "/v1/voices", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Languages fetches the service's language catalog.
func (c *Client) Languages(ctx context.Context) (*api.LanguagesResponse, error) {
	var resp api.LanguagesResponse
	if err := c.get(ctx, "/v1/languages", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// decodeError turns a non-200 response into an error carrying the
// service's message when one is present.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
	}

	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
