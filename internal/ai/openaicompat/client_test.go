package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spigell/hh-autofill/internal/ai"
)

type chatRequest struct {
	Model       string   `json:"model"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestClientGenerate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "llama-3.3-70b-versatile",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "\"Yes\""}}]
		}`))
	}))
	defer server.Close()

	c, err := New("groq", "test-key", server.URL+"/openai/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := c.Generate(context.Background(), "llama-3.3-70b-versatile", ai.Request{
		Prompt:          "Are you authorized to work?",
		MaxOutputTokens: 50,
		Temperature:     ai.Float(0.1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != `"Yes"` {
		t.Fatalf("unexpected output: %q", out)
	}
	if got.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if got.MaxTokens != 50 {
		t.Fatalf("unexpected max_tokens: %d", got.MaxTokens)
	}
	if got.Temperature == nil || *got.Temperature != 0.1 {
		t.Fatalf("unexpected temperature: %v", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "Are you authorized to work?" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestClientRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "rate_limit_error", "code": "rate_limit_exceeded"}}`))
	}))
	defer server.Close()

	c, err := New("openrouter", "k", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Generate(context.Background(), "m", ai.Request{Prompt: "p"})
	if !errors.Is(err, ai.ErrRateLimited) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}

func TestClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`))
	}))
	defer server.Close()

	c, err := New("groq", "k", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Generate(context.Background(), "m", ai.Request{Prompt: "p"})
	if !errors.Is(err, ai.ErrInvalidContent) {
		t.Fatalf("expected invalid content error, got %v", err)
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New("groq", "k", url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Generate(context.Background(), "m", ai.Request{Prompt: "p"})
	if got := ai.Classify(err); got != ai.OutcomeNetworkError {
		t.Fatalf("expected network error outcome, got %s (%v)", got, err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("groq", "", ""); err == nil {
		t.Fatal("expected error without api key")
	}
}
