// Package llm turns a free-text description of an interaction into
// structured log requests with the help of a local language model served
// over an OpenAI-compatible API (Ollama by default).
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/config"
	"github.com/unowned-ai/kith/pkg/store"
)

var ErrNoChoices = errors.New("model returned no choices")

// Client talks to the chat completions endpoint.
type Client struct {
	api    *openai.Client
	model  string
	host   string
	logger *zap.Logger
}

// NewClient points a client at cfg.Host. Ollama ignores the API key but the
// OpenAI client requires one.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	host := strings.TrimRight(cfg.Host, "/")

	oc := openai.DefaultConfig("ollama")
	oc.BaseURL = host + "/v1"
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:    openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		host:   host,
		logger: logger.Named("llm"),
	}
}

// ParseInteraction asks the model to read text. names are the known
// contacts offered for matching; corrections are earlier owner fixes.
func (c *Client) ParseInteraction(ctx context.Context, text string, names []string, corrections []store.Correction, today time.Time) (Parsed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Parsed{}, errors.New("nothing to parse")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(today, names, corrections)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	c.logger.Debug("requesting interaction parse",
		zap.String("model", c.model),
		zap.Int("known_names", len(names)),
		zap.Int("corrections", len(corrections)),
	)
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("chat completion failed", zap.String("host", c.host), zap.Error(err))
		return Parsed{}, fmt.Errorf("model request to %s failed: %w", c.host, err)
	}
	if len(resp.Choices) == 0 {
		return Parsed{}, ErrNoChoices
	}
	content := resp.Choices[0].Message.Content
	c.logger.Debug("received model reply",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
	)

	parsed, err := ParseResponse(content)
	if err != nil {
		c.logger.Warn("unusable model reply", zap.String("content", content), zap.Error(err))
		return Parsed{}, err
	}
	return parsed, nil
}
