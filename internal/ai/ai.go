// Package ai defines the provider-agnostic contract shared by every text-generation backend.
package ai

import (
	"context"
	"fmt"
	"time"
)

// Request is a single prompt sent to one provider model.
type Request struct {
	Prompt          string
	MaxOutputTokens int
	// Temperature is left to the provider default when nil.
	Temperature *float64
}

// Client talks to one remote backend. A client may serve several models.
type Client interface {
	Name() string
	Generate(ctx context.Context, model string, req Request) (string, error)
}

// ProviderDescriptor is one provider/model combination in a waterfall.
// Lower TierRank values are tried first.
type ProviderDescriptor struct {
	Provider       string
	Model          string
	TierRank       int
	RequestTimeout time.Duration
	Client         Client
}

// ID identifies the descriptor within one waterfall call.
func (d ProviderDescriptor) ID() string {
	return fmt.Sprintf("%s/%s", d.Provider, d.Model)
}

// Outcome is the result class of a single provider attempt.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeHTTPError      Outcome = "http_error"
	OutcomeNetworkError   Outcome = "network_error"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeInvalidContent Outcome = "invalid_content"
)

// AttemptRecord describes one provider attempt. It lives only for the duration of one call.
type AttemptRecord struct {
	Provider  string
	Model     string
	StartedAt time.Time
	Outcome   Outcome
	Latency   time.Duration
	Err       error
}

// GeneratedPayload is the provider-agnostic output of a waterfall before task-specific interpretation.
type GeneratedPayload struct {
	RawText       string
	ExtractedJSON map[string]any
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 {
	return &v
}
