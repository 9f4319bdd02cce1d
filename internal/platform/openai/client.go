// Package openai implements the generation interface against an
// OpenAI-compatible chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/businessfurkan/eylulakademi-api/internal/config"
	"github.com/businessfurkan/eylulakademi-api/internal/generation"
	"github.com/businessfurkan/eylulakademi-api/internal/redact"
)

// systemInstruction frames the assistant for every request. The JSON-only
// requirement here is reinforced per-prompt by the structural suffix.
const systemInstruction = "Sen bir eğitim içeriği üreticisisin. Öğrenciler için flashcard hazırlarsın " +
	"ve yanıtlarını her zaman istenen JSON formatında verirsin."

// chatMessage is a single role/content pair in the chat-completion payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the outbound chat-completion payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Store       bool          `json:"store"`
}

// chatResponse covers the part of the completion envelope this service
// consumes: choices[0].message.content.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client wraps the upstream chat-completion call: it builds the request
// payload, sends it, and classifies the raw HTTP outcome. It does not parse
// the generated text; that is the normalizer's responsibility.
type Client struct {
	logger     *slog.Logger
	config     config.UpstreamConfig
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a completion client from upstream configuration.
// An empty API key is tolerated here so the service can start and report the
// missing credential through its health check; Complete rejects requests
// until one is configured.
func NewClient(logger *slog.Logger, cfg config.UpstreamConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		logger:     logger,
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Configured reports whether an upstream credential is present.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Complete sends the prompt to the chat-completion API and returns the raw
// assistant text unparsed. Failures are classified onto the generation
// package sentinels so callers can map them without inspecting transport
// details.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", generation.ErrMissingCredential
	}

	payload := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Store:       true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	c.logger.DebugContext(ctx, "calling completion service",
		"model", c.config.Model,
		"prompt_length", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "completion service unreachable",
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: %v", generation.ErrUpstreamUnreachable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close completion response body",
				"error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", generation.ErrUpstreamUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		// The error body is logged for diagnosis but never echoed to callers.
		c.logger.ErrorContext(ctx, "completion service rejected the request",
			"status_code", resp.StatusCode,
			"body", redact.String(string(raw)))
		return "", fmt.Errorf("%w: status %d", generation.ErrUpstreamRejected, resp.StatusCode)
	}

	var envelope chatResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrMalformedEnvelope, err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrMalformedEnvelope)
	}

	return envelope.Choices[0].Message.Content, nil
}
