package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForReturnsAfterDelay(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := WaitFor(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected to wait at least 10ms, waited %s", elapsed)
	}
}

func TestWaitForStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitFor(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForNonPositive(t *testing.T) {
	t.Parallel()

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	got := SingleLine("  Are you\n\tauthorized   to work?  ")
	if got != "Are you authorized to work?" {
		t.Fatalf("unexpected result: %q", got)
	}
}
