package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrNetwork marks connection, DNS and transport failures.
	ErrNetwork = errors.New("network error")
	// ErrTimeout marks an attempt that ran past its request timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrRateLimited marks an HTTP 429 or an equivalent quota signal.
	ErrRateLimited = errors.New("rate limited")
	// ErrHTTP marks any other non-success response from a provider.
	ErrHTTP = errors.New("provider returned an error")
	// ErrInvalidContent marks an empty answer or one that failed validation.
	ErrInvalidContent = errors.New("invalid content")
	// ErrExhausted is returned when every provider of a waterfall failed.
	ErrExhausted = errors.New("all providers exhausted")
)

// ProviderError carries the provider identity alongside a classified failure.
type ProviderError struct {
	Provider   string
	Model      string
	StatusCode int
	Kind       error
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s/%s: %v", e.Provider, e.Model, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() []error {
	return nonNil(e.Kind, e.Err)
}

// StatusError classifies an HTTP status returned by a provider.
func StatusError(provider, model string, status int, err error) error {
	kind := ErrHTTP
	if status == http.StatusTooManyRequests {
		kind = ErrRateLimited
	}
	return &ProviderError{Provider: provider, Model: model, StatusCode: status, Kind: kind, Err: err}
}

// TransportError classifies an error raised before any HTTP status was received.
func TransportError(provider, model string, err error) error {
	kind := ErrNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = ErrTimeout
	}
	return &ProviderError{Provider: provider, Model: model, Kind: kind, Err: err}
}

// InvalidContent reports an unusable answer from a provider.
func InvalidContent(provider, model, reason string) error {
	return &ProviderError{Provider: provider, Model: model, Kind: ErrInvalidContent, Err: errors.New(reason)}
}

// Classify maps an attempt error to its outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrInvalidContent):
		return OutcomeInvalidContent
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, ErrHTTP):
		return OutcomeHTTPError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return OutcomeTimeout
		}
		return OutcomeNetworkError
	}

	if errors.Is(err, ErrNetwork) {
		return OutcomeNetworkError
	}

	return OutcomeHTTPError
}

// ExhaustedError is returned by a waterfall that ran out of providers.
type ExhaustedError struct {
	Waterfall string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("waterfall %s: %v after %d attempts", e.Waterfall, ErrExhausted, e.Attempts)
	}
	return fmt.Sprintf("waterfall %s: %v after %d attempts: %v", e.Waterfall, ErrExhausted, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return nonNil(ErrExhausted, e.Last)
}

func nonNil(errs ...error) []error {
	result := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
