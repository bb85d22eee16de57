// Package registry turns provider configuration into waterfall descriptors.
package registry

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/ai/anthropic"
	"github.com/spigell/hh-autofill/internal/ai/gemini"
	"github.com/spigell/hh-autofill/internal/ai/openaicompat"
	"github.com/spigell/hh-autofill/internal/logger"
	"github.com/spigell/hh-autofill/internal/secrets"
)

const (
	KindOpenAI    = "openai"
	KindGemini    = "gemini"
	KindAnthropic = "anthropic"
)

// ProviderConfig describes one backend and the models to try on it, in order.
type ProviderConfig struct {
	Name       string        `mapstructure:"name"`
	Kind       string        `mapstructure:"kind"`
	BaseURL    string        `mapstructure:"base-url"`
	APIKey     string        `mapstructure:"api-key"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	APIKeyEnv  string        `mapstructure:"api-key-env"`
	Models     []string      `mapstructure:"models"`
	TierRank   int           `mapstructure:"tier-rank"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Factory builds a client for one provider kind.
type Factory func(ctx context.Context, name, apiKey, baseURL string) (ai.Client, error)

// DefaultFactories covers every supported provider kind.
func DefaultFactories() map[string]Factory {
	return map[string]Factory{
		KindOpenAI: func(_ context.Context, name, apiKey, baseURL string) (ai.Client, error) {
			return openaicompat.New(name, apiKey, baseURL)
		},
		KindGemini: func(ctx context.Context, name, apiKey, _ string) (ai.Client, error) {
			return gemini.New(ctx, name, apiKey)
		},
		KindAnthropic: func(_ context.Context, name, apiKey, baseURL string) (ai.Client, error) {
			return anthropic.New(name, apiKey, baseURL)
		},
	}
}

// Provider is a configured client together with its ordered model list.
type Provider struct {
	Config ProviderConfig
	Client ai.Client
}

// Descriptors expands the provider into one descriptor per model. Models keep
// their configured order inside the provider's tier. A provider timeout, when
// set, overrides defaultTimeout.
func (p Provider) Descriptors(defaultTimeout time.Duration) []ai.ProviderDescriptor {
	timeout := defaultTimeout
	if p.Config.Timeout > 0 {
		timeout = p.Config.Timeout
	}

	result := make([]ai.ProviderDescriptor, 0, len(p.Config.Models))
	for i, model := range p.Config.Models {
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		result = append(result, ai.ProviderDescriptor{
			Provider:       p.Client.Name(),
			Model:          model,
			TierRank:       p.Config.TierRank*1000 + i,
			RequestTimeout: timeout,
			Client:         p.Client,
		})
	}
	return result
}

// Build creates a client for every usable provider config. Providers that
// cannot be built (unknown kind, missing key, no models) are skipped with a
// warning so that a deployment missing one key keeps working with the rest.
func Build(ctx context.Context, cfgs []ProviderConfig, factories map[string]Factory, log *zap.Logger) []Provider {
	log = logger.OrNop(log)
	if factories == nil {
		factories = DefaultFactories()
	}

	providers := make([]Provider, 0, len(cfgs))
	for i, cfg := range cfgs {
		provider, err := build(ctx, cfg, factories)
		if err != nil {
			log.Warn("skipping ai provider",
				zap.Int("index", i),
				zap.String(logger.FieldProvider, cfg.Name),
				zap.String("kind", cfg.Kind),
				zap.Error(err),
			)
			continue
		}
		providers = append(providers, provider)
	}
	return providers
}

// Descriptors flattens several providers into a single descriptor list.
func Descriptors(providers []Provider, defaultTimeout time.Duration) []ai.ProviderDescriptor {
	var result []ai.ProviderDescriptor
	for _, p := range providers {
		result = append(result, p.Descriptors(defaultTimeout)...)
	}
	return result
}

// Chain concatenates descriptor groups so that every descriptor of an earlier
// group is tried before any descriptor of a later one. Ranks are kept in order
// inside a group and renumbered 0..n-1 across the result.
func Chain(groups ...[]ai.ProviderDescriptor) []ai.ProviderDescriptor {
	var result []ai.ProviderDescriptor
	for _, group := range groups {
		sorted := slices.Clone(group)
		slices.SortStableFunc(sorted, func(a, b ai.ProviderDescriptor) int {
			return cmp.Compare(a.TierRank, b.TierRank)
		})
		result = append(result, sorted...)
	}
	for i := range result {
		result[i].TierRank = i
	}
	return result
}

func build(ctx context.Context, cfg ProviderConfig, factories map[string]Factory) (Provider, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	if kind == "" {
		kind = KindOpenAI
	}

	factory, ok := factories[kind]
	if !ok {
		return Provider{}, fmt.Errorf("unsupported ai provider kind: %s", cfg.Kind)
	}

	if len(cfg.Models) == 0 {
		return Provider{}, fmt.Errorf("provider %s has no models configured", cfg.Name)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = kind
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  name + " api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   cfg.APIKeyEnv,
	})
	if err != nil {
		return Provider{}, err
	}

	client, err := factory(ctx, name, apiKey, cfg.BaseURL)
	if err != nil {
		return Provider{}, fmt.Errorf("create %s client: %w", name, err)
	}

	cfg.Name = name
	cfg.Kind = kind
	return Provider{Config: cfg, Client: client}, nil
}
