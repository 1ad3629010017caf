// Package llm wraps the Gemini completion API behind a single Complete
// call with a per-request timeout and classified failures.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"tubelens/internal/config"
	"tubelens/internal/core"
	"tubelens/internal/logger"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Client is a Gemini-backed completion client. One prompt in, one text
// completion out; callers own retries (there are none here).
type Client struct {
	gClient     *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
}

// NewClient creates a completion client from configuration. The API key
// is required; everything else falls back to defaults.
func NewClient(cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	gClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		gClient:     gClient,
		modelName:   modelName,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
	}, nil
}

// Complete sends the prompt and returns the raw completion text. The
// call runs under the configured timeout; a deadline hit classifies as
// completion_timeout, every other provider failure as
// completion_upstream_error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		MaxOutputTokens:  c.maxTokens,
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, genConfig)
	if err != nil {
		return "", classifyCompletionError(err, ctx)
	}

	text := resp.Text()
	if text == "" {
		return "", &core.StageError{
			Kind:    core.ErrKindCompletionUpstream,
			Message: "empty response from model",
		}
	}

	logger.Debug("Completion received",
		"model", c.modelName,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_chars", len(text))

	return text, nil
}

// classifyCompletionError maps a provider failure onto the stage error
// taxonomy. Deadline and timeout shapes become completion_timeout; the
// rest are upstream errors.
func classifyCompletionError(err error, ctx context.Context) error {
	kind := core.ErrKindCompletionUpstream

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = core.ErrKindCompletionTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = core.ErrKindCompletionTimeout
	}

	return &core.StageError{
		Kind:    kind,
		Message: fmt.Sprintf("completion request failed: %v", err),
	}
}
