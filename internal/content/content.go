// Package content generates job-related documents: match analysis, essays
// and tailored résumé bullets. Unlike field resolution these operations have
// no safe default, so exhausting every backend is reported as an error.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/logger"
	"github.com/spigell/hh-autofill/internal/utils"
)

// MaxSecondaries is the number of fallback backends consulted after the primary one.
const MaxSecondaries = 3

const defaultMaxLogLength = 200

// Backend is a waterfall of providers. *waterfall.Waterfall satisfies it.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req ai.Request, options []string) (string, error)
	GeneratePayload(ctx context.Context, req ai.Request, validate func(map[string]any) error) (*ai.GeneratedPayload, error)
}

// Generator runs document prompts against a primary backend and, when that is
// exhausted, against up to MaxSecondaries secondary backends in order.
type Generator struct {
	backends     []Backend
	logger       *zap.Logger
	maxLogLength int
}

// GenerationExhaustedError is returned when no backend produced a usable document.
type GenerationExhaustedError struct {
	Operation string
	// Attempts counts provider calls across every backend.
	Attempts int
	Err      error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("%s: no provider produced a usable answer after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *GenerationExhaustedError) Unwrap() error { return e.Err }

// New builds a generator. Nil backends are ignored and secondaries beyond
// MaxSecondaries are dropped with a warning.
func New(primary Backend, secondaries []Backend, log *zap.Logger, maxLogLength int) *Generator {
	log = logger.OrNop(log)
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	backends := make([]Backend, 0, 1+MaxSecondaries)
	if primary != nil {
		backends = append(backends, primary)
	}

	kept := 0
	for _, b := range secondaries {
		if b == nil {
			continue
		}
		if kept == MaxSecondaries {
			log.Warn("too many secondary backends, ignoring the rest",
				zap.Int("max", MaxSecondaries),
				zap.String("ignored", b.Name()),
			)
			break
		}
		backends = append(backends, b)
		kept++
	}

	return &Generator{backends: backends, logger: log, maxLogLength: maxLogLength}
}

// payload asks each backend in turn for a JSON object accepted by validate.
func (g *Generator) payload(ctx context.Context, operation string, req ai.Request, validate func(map[string]any) error) (*ai.GeneratedPayload, error) {
	return g.run(ctx, operation, req, func(b Backend) (*ai.GeneratedPayload, error) {
		return b.GeneratePayload(ctx, req, validate)
	})
}

// text asks each backend in turn for any non-empty answer.
func (g *Generator) text(ctx context.Context, operation string, req ai.Request) (string, error) {
	p, err := g.run(ctx, operation, req, func(b Backend) (*ai.GeneratedPayload, error) {
		raw, err := b.Generate(ctx, req, nil)
		if err != nil {
			return nil, err
		}
		return &ai.GeneratedPayload{RawText: raw}, nil
	})
	if err != nil {
		return "", err
	}
	return p.RawText, nil
}

func (g *Generator) run(ctx context.Context, operation string, req ai.Request, call func(Backend) (*ai.GeneratedPayload, error)) (*ai.GeneratedPayload, error) {
	log := g.logger.With(zap.String("operation", operation))
	log.Debug("generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(req.Prompt, g.maxLogLength)),
	)

	attempts := 0
	var lastErr error
	for i, b := range g.backends {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}

		started := time.Now()
		p, err := call(b)
		if err == nil {
			log.Info("generate step",
				zap.String("backend", b.Name()),
				zap.Int("position", i),
				zap.Duration("duration", time.Since(started)),
			)
			log.Debug("generate response",
				zap.String("backend", b.Name()),
				zap.String("response_preview", utils.TruncateForLog(p.RawText, g.maxLogLength)),
			)
			return p, nil
		}

		var exhausted *ai.ExhaustedError
		if errors.As(err, &exhausted) {
			attempts += exhausted.Attempts
		} else if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		lastErr = err

		log.Warn("backend exhausted, trying next",
			zap.String("backend", b.Name()),
			zap.Int("position", i),
			zap.Error(err),
		)
	}

	if lastErr == nil {
		lastErr = ai.ErrExhausted
	}
	return nil, &GenerationExhaustedError{Operation: operation, Attempts: attempts, Err: lastErr}
}
