// Package waterfall turns a prompt into a best-effort answer by trying an
// ordered list of provider models until one produces acceptable output.
package waterfall

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/extract"
	"github.com/spigell/hh-autofill/internal/logger"
	"github.com/spigell/hh-autofill/internal/utils"
)

const (
	defaultBaseBackoff  = time.Second
	defaultMaxBackoff   = 30 * time.Second
	defaultMaxLogLength = 200
)

// Config tunes backoff and logging of a waterfall.
type Config struct {
	// BaseBackoff is multiplied by the attempt index after a rate-limited attempt.
	BaseBackoff time.Duration `mapstructure:"base-backoff"`
	// MaxBackoff caps a single backoff wait.
	MaxBackoff   time.Duration `mapstructure:"max-backoff"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

// Waterfall tries provider descriptors in ascending tier order, each at most once per call.
// It holds no mutable state, so one instance may serve concurrent calls.
type Waterfall struct {
	name        string
	descriptors []ai.ProviderDescriptor
	cfg         Config
	logger      *zap.Logger
	wait        func(ctx context.Context, d time.Duration) error
}

// New builds a waterfall over a sorted copy of descriptors.
func New(name string, descriptors []ai.ProviderDescriptor, cfg Config, log *zap.Logger) *Waterfall {
	sorted := make([]ai.ProviderDescriptor, len(descriptors))
	copy(sorted, descriptors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TierRank < sorted[j].TierRank
	})

	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = defaultBaseBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}

	return &Waterfall{
		name:        name,
		descriptors: sorted,
		cfg:         cfg,
		logger:      logger.WithFields(log, zap.String("waterfall", name)),
		wait:        utils.WaitFor,
	}
}

// Name returns the waterfall name used in logs and errors.
func (w *Waterfall) Name() string { return w.name }

// Len returns the number of configured descriptors.
func (w *Waterfall) Len() int { return len(w.descriptors) }

// Generate returns the first acceptable plain answer. When options is non-empty
// the answer must match one of them and the matching option is returned verbatim.
// An *ai.ExhaustedError is returned when no provider produced an acceptable answer.
func (w *Waterfall) Generate(ctx context.Context, req ai.Request, options []string) (string, error) {
	accept := acceptNonEmpty
	if len(options) > 0 {
		accept = acceptOption(options)
	}

	payload, err := w.run(ctx, req, accept)
	if err != nil {
		return "", err
	}
	return payload.RawText, nil
}

// GeneratePayload returns the first answer that contains a JSON object accepted by validate.
// A nil validate accepts any object.
func (w *Waterfall) GeneratePayload(ctx context.Context, req ai.Request, validate func(map[string]any) error) (*ai.GeneratedPayload, error) {
	return w.run(ctx, req, func(raw string) (*ai.GeneratedPayload, error) {
		obj, ok := extract.ExtractJSON(raw)
		if !ok {
			return nil, errors.New("no JSON object in answer")
		}
		if validate != nil {
			if err := validate(obj); err != nil {
				return nil, fmt.Errorf("unexpected JSON shape: %w", err)
			}
		}
		return &ai.GeneratedPayload{RawText: raw, ExtractedJSON: obj}, nil
	})
}

type acceptFunc func(raw string) (*ai.GeneratedPayload, error)

func (w *Waterfall) run(ctx context.Context, req ai.Request, accept acceptFunc) (*ai.GeneratedPayload, error) {
	tried := make(map[string]struct{}, len(w.descriptors))
	attempts := make([]ai.AttemptRecord, 0, len(w.descriptors))
	var lastErr error

	for i, d := range w.descriptors {
		if _, ok := tried[d.ID()]; ok {
			continue
		}
		tried[d.ID()] = struct{}{}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("waterfall %s: %w", w.name, err)
		}

		attempt := len(attempts) + 1
		log := logger.WithCommonFields(w.logger, d.Provider, d.Model)

		record, payload := w.attempt(ctx, d, req, accept)
		attempts = append(attempts, record)
		log = log.With(logger.AttemptFields(attempt, string(record.Outcome), record.Latency)...)

		if record.Outcome == ai.OutcomeSuccess {
			log.Debug("provider answered",
				zap.Int("response_length", utf8.RuneCountInString(payload.RawText)),
				zap.String("response_preview", utils.TruncateForLog(payload.RawText, w.cfg.MaxLogLength)),
			)
			return payload, nil
		}

		lastErr = record.Err

		// The parent context ended during the attempt; do not blame the provider.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("waterfall %s: %w", w.name, err)
		}

		if record.Outcome != ai.OutcomeRateLimited {
			log.Warn("provider attempt failed", zap.Error(record.Err))
			continue
		}

		if !w.hasUntried(i+1, tried) {
			log.Warn("provider rate limited", zap.Error(record.Err))
			continue
		}

		delay := w.backoff(attempt)
		log.Warn("provider rate limited, backing off", zap.Error(record.Err), zap.Duration("backoff", delay))
		if err := w.wait(ctx, delay); err != nil {
			return nil, fmt.Errorf("waterfall %s: %w", w.name, err)
		}
	}

	w.logger.Warn("all providers exhausted",
		zap.Int("attempts", len(attempts)),
		zap.Error(lastErr),
	)

	return nil, &ai.ExhaustedError{Waterfall: w.name, Attempts: len(attempts), Last: lastErr}
}

// attempt runs one descriptor under its own timeout and classifies the result.
func (w *Waterfall) attempt(ctx context.Context, d ai.ProviderDescriptor, req ai.Request, accept acceptFunc) (ai.AttemptRecord, *ai.GeneratedPayload) {
	record := ai.AttemptRecord{Provider: d.Provider, Model: d.Model, StartedAt: time.Now()}

	attemptCtx := ctx
	if d.RequestTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, d.RequestTimeout)
		defer cancel()
	}

	raw, err := d.Client.Generate(attemptCtx, d.Model, req)
	record.Latency = time.Since(record.StartedAt)

	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ai.ErrTimeout) {
			err = ai.TransportError(d.Provider, d.Model, context.DeadlineExceeded)
		}
		record.Err = err
		record.Outcome = ai.Classify(err)
		return record, nil
	}

	payload, err := accept(raw)
	if err != nil {
		record.Err = ai.InvalidContent(d.Provider, d.Model, err.Error())
		record.Outcome = ai.OutcomeInvalidContent
		return record, nil
	}

	record.Outcome = ai.OutcomeSuccess
	return record, payload
}

func (w *Waterfall) hasUntried(from int, tried map[string]struct{}) bool {
	for _, d := range w.descriptors[from:] {
		if _, ok := tried[d.ID()]; !ok {
			return true
		}
	}
	return false
}

// backoff grows linearly with the attempt index and is capped by MaxBackoff.
func (w *Waterfall) backoff(attempt int) time.Duration {
	delay := w.cfg.BaseBackoff * time.Duration(attempt)
	if delay > w.cfg.MaxBackoff {
		delay = w.cfg.MaxBackoff
	}
	return delay
}
