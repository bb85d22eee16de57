package anthropic

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

func TestClientGenerate(t *testing.T) {
	var body struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if key := r.Header.Get("X-Api-Key"); key != "test-key" {
			t.Errorf("unexpected api key header: %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "{\"score\": 80}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	c, err := New("anthropic", "test-key", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := c.Generate(context.Background(), "claude-3-5-haiku-latest", ai.Request{Prompt: "score this"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != `{"score": 80}` {
		t.Fatalf("unexpected output: %q", out)
	}
	if body.Model != "claude-3-5-haiku-latest" {
		t.Fatalf("unexpected model: %q", body.Model)
	}
	if body.MaxTokens != defaultMaxTokens {
		t.Fatalf("expected default max tokens, got %d", body.MaxTokens)
	}
	if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", body.Messages)
	}
}

func TestClientRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer server.Close()

	c, err := New("anthropic", "k", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Generate(context.Background(), "claude", ai.Request{Prompt: "p"})
	if !errors.Is(err, ai.ErrRateLimited) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}
