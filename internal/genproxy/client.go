// Package genproxy wraps the internal text-generation proxy. It is the only
// network dependency of the synthesis pipeline: the service never calls a
// generative provider directly, it talks to the proxy's OpenAI-compatible
// endpoint.
package genproxy

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultTimeout = 30 * time.Second

// Request is the fixed generation contract: a system template, the user
// payload interpolated from archetype fields, and bounded output settings.
type Request struct {
	System      string
	User        string
	ModelHint   string
	Temperature float32
	MaxTokens   int
}

// Generator is the single generation entry point. Implementations must
// honour ctx cancellation and return *Error for classified failures.
type Generator interface {
	Generate(ctx context.Context, stage string, req Request) (string, error)
}

// Client talks to the generation proxy over its OpenAI-compatible API.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a proxy client. model is the default model used when a
// request carries no hint; timeout bounds each call (default 30s if <= 0).
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Generate issues exactly one chat completion call and returns the raw text
// reply. Failures are classified into *Error so callers can branch on reason.
func (c *Client) Generate(ctx context.Context, stage string, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := req.ModelHint
	if model == "" {
		model = c.model
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		reason := ReasonNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		return "", &Error{Stage: stage, Reason: reason, Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &Error{Stage: stage, Reason: ReasonEmpty}
	}
	return resp.Choices[0].Message.Content, nil
}
