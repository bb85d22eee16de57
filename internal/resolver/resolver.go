// Package resolver picks a value for a scraped form field from an applicant
// profile. Cheap deterministic tiers run first and an AI waterfall is the
// last resort. Resolution never fails: when nothing matches, a safe default
// with low confidence is returned.
package resolver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/logger"
	"github.com/spigell/hh-autofill/internal/profile"
	"github.com/spigell/hh-autofill/internal/similarity"
	"github.com/spigell/hh-autofill/internal/utils"
)

const (
	defaultMaxOutputTokens = 100
	defaultMaxLogLength    = 200
)

// Answerer produces a short answer to a prompt. When options is non-empty the
// answer must be one of them. *waterfall.Waterfall satisfies it.
type Answerer interface {
	Generate(ctx context.Context, req ai.Request, options []string) (string, error)
}

// Tier is one resolution strategy.
type Tier interface {
	Name() string
	Resolve(ctx context.Context, f form.Field, p *profile.Profile) (form.MatchResult, bool)
}

// Resolver runs tiers in order until one yields a value.
type Resolver struct {
	tiers  []Tier
	logger *zap.Logger
	newID  func() string
}

type settings struct {
	rules           []Rule
	categories      []Category
	maxOutputTokens int
	temperature     *float64
	maxLogLength    int
}

// Option customizes a Resolver.
type Option func(*settings)

// WithRules replaces the hardcoded rule table.
func WithRules(rules []Rule) Option {
	return func(s *settings) { s.rules = rules }
}

// WithCategories replaces the fuzzy category table.
func WithCategories(categories []Category) Option {
	return func(s *settings) { s.categories = categories }
}

// WithMaxOutputTokens limits the length of AI answers.
func WithMaxOutputTokens(n int) Option {
	return func(s *settings) { s.maxOutputTokens = n }
}

// WithTemperature sets the sampling temperature of AI answers.
func WithTemperature(t float64) Option {
	return func(s *settings) { s.temperature = ai.Float(t) }
}

// WithMaxLogLength limits prompt previews in debug logs.
func WithMaxLogLength(n int) Option {
	return func(s *settings) { s.maxLogLength = n }
}

// New builds a resolver. A nil answerer disables the AI tier.
func New(answerer Answerer, log *zap.Logger, opts ...Option) *Resolver {
	s := settings{
		rules:           DefaultRules,
		categories:      DefaultCategories,
		maxOutputTokens: defaultMaxOutputTokens,
		temperature:     ai.Float(0),
		maxLogLength:    defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(&s)
	}

	log = logger.OrNop(log)

	tiers := []Tier{
		&hardcodedTier{rules: s.rules, logger: log},
		&fuzzyTier{categories: s.categories},
	}
	if answerer != nil {
		tiers = append(tiers, &aiTier{
			answerer:        answerer,
			maxOutputTokens: s.maxOutputTokens,
			temperature:     s.temperature,
			maxLogLength:    s.maxLogLength,
			logger:          log,
		})
	} else {
		log.Info("ai answerer is not configured; ai tier disabled")
	}

	return &Resolver{tiers: tiers, logger: log, newID: uuid.NewString}
}

// MatchFieldValue resolves one field. It never returns an error; a nil profile
// is treated as an empty one.
func (r *Resolver) MatchFieldValue(ctx context.Context, f form.Field, p *profile.Profile) form.MatchResult {
	if p == nil {
		p = &profile.Profile{}
	}

	log := r.logger.With(
		zap.String(logger.FieldResolutionID, r.newID()),
		zap.String("label", utils.SingleLine(f.Label)),
		zap.String("kind", string(f.Kind)),
	)

	if err := f.Validate(); err != nil {
		log.Warn("field cannot be resolved", zap.Error(err))
		return fallback(f)
	}

	for _, tier := range r.tiers {
		if ctx.Err() != nil {
			log.Warn("resolution cancelled", zap.Error(ctx.Err()))
			break
		}

		started := time.Now()
		result, ok := tier.Resolve(ctx, f, p)
		log.Info("tier step",
			zap.String(logger.FieldTier, tier.Name()),
			zap.Bool("resolved", ok),
			zap.Duration("duration", time.Since(started)),
		)
		if ok {
			return result
		}
	}

	result := fallback(f)
	log.Warn("no tier resolved the field, using fallback", zap.Stringer("value", result.Value))
	return result
}

// fallback is the first real option for option fields and an empty string otherwise.
func fallback(f form.Field) form.MatchResult {
	value := form.Text("")
	if f.Kind.HasOptions() {
		if option, ok := similarity.FirstRealOption(f.Options); ok {
			value = form.Text(option)
		}
	}
	return form.MatchResult{Value: value, Confidence: form.ConfidenceLow, Source: form.SourceAI}
}

func realOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if !similarity.IsPlaceholder(o) {
			out = append(out, o)
		}
	}
	return out
}
