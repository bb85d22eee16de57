// Package anthropic adapts the Anthropic messages API to ai.Client.
package anthropic

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spigell/hh-autofill/internal/ai"
)

// The messages API requires max_tokens on every request.
const defaultMaxTokens = 1024

// Client sends single-turn prompts to the Anthropic messages API.
type Client struct {
	name   string
	client sdk.Client
}

// New creates a client. An empty baseURL targets api.anthropic.com.
func New(name, apiKey, baseURL string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "anthropic"
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

	return &Client{name: name, client: sdk.NewClient(opts...)}, nil
}

func (c *Client) Name() string { return c.name }

// Generate sends one user message and joins the text blocks of the reply.
func (c *Client) Generate(ctx context.Context, model string, req ai.Request) (string, error) {
	maxTokens := int64(req.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", ai.StatusError(c.name, model, apiErr.StatusCode, err)
		}
		return "", ai.TransportError(c.name, model, err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			parts = append(parts, block.Text)
		}
	}

	return strings.Join(parts, "\n"), nil
}
