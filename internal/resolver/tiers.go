package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/profile"
	"github.com/spigell/hh-autofill/internal/similarity"
	"github.com/spigell/hh-autofill/internal/utils"
)

type hardcodedTier struct {
	rules  []Rule
	logger *zap.Logger
}

func (t *hardcodedTier) Name() string { return "hardcoded" }

func (t *hardcodedTier) Resolve(_ context.Context, f form.Field, p *profile.Profile) (form.MatchResult, bool) {
	if f.Kind != form.KindCheckbox {
		if answer, ok := p.CustomAnswer(f.Label); ok {
			return t.shape(f, "custom_answer", form.Text(answer))
		}
	}

	for _, rule := range t.rules {
		if !rule.Matches(f) {
			continue
		}
		value, ok := rule.Value(p)
		if !ok {
			// The first matching rule owns the field even when the profile lacks the fact.
			t.logger.Debug("rule matched but profile has no value", zap.String("rule", rule.Name))
			return form.MatchResult{}, false
		}
		return t.shape(f, rule.Name, value)
	}

	return form.MatchResult{}, false
}

// shape adapts a profile value to the field kind.
func (t *hardcodedTier) shape(f form.Field, rule string, value form.Value) (form.MatchResult, bool) {
	switch {
	case f.Kind == form.KindCheckbox:
		b, ok := value.Bool()
		if !ok {
			return form.MatchResult{}, false
		}
		return form.MatchResult{Value: form.Bool(b), Confidence: form.ConfidenceHigh, Source: form.SourceHardcoded}, true

	case f.Kind.HasOptions():
		options := realOptions(f.Options)
		if len(options) == 0 {
			return form.MatchResult{Value: form.Text(value.String()), Confidence: form.ConfidenceHigh, Source: form.SourceHardcoded}, true
		}
		if m, ok := similarity.FindBestOption(options, value.String()); ok {
			return form.MatchResult{Value: form.Text(m.Option), Confidence: form.ConfidenceHigh, Source: form.SourceSimilarity}, true
		}
		// A value outside the option list cannot be submitted; let later tiers try.
		t.logger.Debug("profile value matches no option",
			zap.String("rule", rule),
			zap.Int("options", len(options)),
		)
		return form.MatchResult{}, false

	default:
		return form.MatchResult{Value: form.Text(value.String()), Confidence: form.ConfidenceHigh, Source: form.SourceHardcoded}, true
	}
}

type fuzzyTier struct {
	categories []Category
}

func (t *fuzzyTier) Name() string { return "fuzzy" }

func (t *fuzzyTier) Resolve(_ context.Context, f form.Field, p *profile.Profile) (form.MatchResult, bool) {
	if !f.Kind.HasOptions() {
		return form.MatchResult{}, false
	}
	options := realOptions(f.Options)
	if len(options) == 0 {
		return form.MatchResult{}, false
	}

	for _, category := range t.categories {
		if !category.Matches(f) {
			continue
		}
		for _, candidate := range category.Value(p) {
			if m, ok := similarity.FindBestOption(options, candidate); ok {
				return form.MatchResult{Value: form.Text(m.Option), Confidence: form.ConfidenceMedium, Source: form.SourceFuzzy}, true
			}
		}
		return form.MatchResult{}, false
	}

	return form.MatchResult{}, false
}

type aiTier struct {
	answerer        Answerer
	maxOutputTokens int
	temperature     *float64
	maxLogLength    int
	logger          *zap.Logger
}

var checkboxOptions = []string{"Yes", "No"}

func (t *aiTier) Name() string { return "ai" }

func (t *aiTier) Resolve(ctx context.Context, f form.Field, p *profile.Profile) (form.MatchResult, bool) {
	var options []string
	switch {
	case f.Kind == form.KindCheckbox:
		options = checkboxOptions
	case f.Kind.HasOptions():
		options = realOptions(f.Options)
	}

	prompt := buildPrompt(f, options, p)
	t.logger.Debug("asking ai for field value",
		zap.String("prompt_preview", utils.TruncateForLog(prompt, t.maxLogLength)),
	)

	answer, err := t.answerer.Generate(ctx, ai.Request{
		Prompt:          prompt,
		MaxOutputTokens: t.maxOutputTokens,
		Temperature:     t.temperature,
	}, options)
	if err != nil {
		t.logger.Warn("ai tier produced no answer", zap.Error(err))
		return form.MatchResult{}, false
	}

	switch {
	case f.Kind == form.KindCheckbox:
		return form.MatchResult{Value: form.Bool(strings.EqualFold(answer, "yes")), Confidence: form.ConfidenceMedium, Source: form.SourceAI}, true

	case f.Kind.HasOptions() && len(options) > 0:
		m, ok := similarity.FindBestOption(options, answer)
		if !ok {
			t.logger.Warn("ai answer matches no option", zap.String("answer", utils.TruncateForLog(answer, t.maxLogLength)))
			return form.MatchResult{}, false
		}
		return form.MatchResult{Value: form.Text(m.Option), Confidence: form.ConfidenceMedium, Source: form.SourceAI}, true

	default:
		return form.MatchResult{Value: form.Text(answer), Confidence: form.ConfidenceMedium, Source: form.SourceAI}, true
	}
}
