// Package genai adapts an OpenAI-compatible chat completion endpoint to the
// assistant's TextGenerator port. The default endpoint is Gemini's
// OpenAI-compatible surface.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/schoolevents/eventhub/internal/api/metrics"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"
)

var ErrNoChoices = errors.New("genai: response has no choices")

// Config holds the endpoint settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// completer is the subset of *openai.Client used here.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	api   completer
	model string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL

	return &Client{api: openai.NewClientWithConfig(config), model: model}
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt string, params ports.GenerationParams) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	metrics.AssistantLatency.WithLabelValues(c.model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("genai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(c.model, "empty").Inc()
		return "", ErrNoChoices
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	result := "ok"
	if text == "" {
		result = "empty"
	}
	metrics.AssistantRequestsTotal.WithLabelValues(c.model, result).Inc()
	return text, nil
}

var _ ports.TextGenerator = (*Client)(nil)
