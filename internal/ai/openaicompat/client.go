// Package openaicompat adapts any OpenAI-compatible chat-completions endpoint
// (OpenAI, Groq, OpenRouter, Together, Cerebras, local gateways) to ai.Client.
package openaicompat

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spigell/hh-autofill/internal/ai"
)

// Client posts chat-completion requests with bearer auth to one base URL.
type Client struct {
	name   string
	client openai.Client
}

// New creates a client. An empty baseURL targets api.openai.com.
// SDK-level retries are disabled; the waterfall decides what happens after a failure.
func New(name, apiKey, baseURL string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "openai"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{name: name, client: openai.NewClient(opts...)}, nil
}

func (c *Client) Name() string { return c.name }

// Generate sends a single user message and returns the first choice's content.
func (c *Client) Generate(ctx context.Context, model string, req ai.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxOutputTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", ai.StatusError(c.name, model, apiErr.StatusCode, err)
		}
		return "", ai.TransportError(c.name, model, err)
	}

	if len(resp.Choices) == 0 {
		return "", ai.InvalidContent(c.name, model, "response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
