package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/hh-autofill/internal/ai"
)

const providerName = "gemini"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI client to provide simple prompt-based interactions.
type Client struct {
	name   string
	models contentGenerator
}

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, name, apiKey string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if name = strings.TrimSpace(name); name == "" {
		name = providerName
	}

	return &Client{name: name, models: client.Models}, nil
}

func (c *Client) Name() string { return c.name }

// Generate sends the prompt to the given Gemini model and returns the joined text parts.
func (c *Client) Generate(ctx context.Context, model string, req ai.Request) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if req.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", c.classify(model, err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func (c *Client) classify(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.StatusError(c.name, model, apiErr.Code, err)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return ai.StatusError(c.name, model, apiErrPtr.Code, err)
	}

	return ai.TransportError(c.name, model, err)
}
