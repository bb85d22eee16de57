package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{name: "nil", err: nil, want: OutcomeSuccess},
		{name: "429", err: StatusError("groq", "llama", http.StatusTooManyRequests, nil), want: OutcomeRateLimited},
		{name: "500", err: StatusError("groq", "llama", http.StatusInternalServerError, nil), want: OutcomeHTTPError},
		{name: "deadline", err: TransportError("groq", "llama", context.DeadlineExceeded), want: OutcomeTimeout},
		{name: "net timeout", err: TransportError("groq", "llama", timeoutErr{}), want: OutcomeTimeout},
		{name: "dial", err: TransportError("groq", "llama", errors.New("connection refused")), want: OutcomeNetworkError},
		{name: "invalid", err: InvalidContent("groq", "llama", "empty answer"), want: OutcomeInvalidContent},
		{name: "wrapped rate limit", err: fmt.Errorf("call: %w", ErrRateLimited), want: OutcomeRateLimited},
		{name: "raw deadline", err: context.DeadlineExceeded, want: OutcomeTimeout},
		{name: "unknown", err: errors.New("boom"), want: OutcomeHTTPError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestProviderErrorMessage(t *testing.T) {
	t.Parallel()

	err := StatusError("openrouter", "mistral", http.StatusTooManyRequests, errors.New("slow down"))
	msg := err.Error()
	for _, part := range []string{"openrouter/mistral", "rate limited", "status 429", "slow down"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("expected %q in %q", part, msg)
		}
	}
}

func TestExhaustedErrorUnwrap(t *testing.T) {
	t.Parallel()

	last := InvalidContent("gemini", "flash", "empty answer")
	err := &ExhaustedError{Waterfall: "primary", Attempts: 3, Last: last}

	if !errors.Is(err, ErrExhausted) {
		t.Fatal("expected ErrExhausted")
	}
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatal("expected last error kind to be reachable")
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) || providerErr.Provider != "gemini" {
		t.Fatalf("expected provider error from gemini, got %v", providerErr)
	}
}
