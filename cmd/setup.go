package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/ai/registry"
	"github.com/spigell/hh-autofill/internal/ai/waterfall"
	"github.com/spigell/hh-autofill/internal/content"
	"github.com/spigell/hh-autofill/internal/logger"
	"github.com/spigell/hh-autofill/internal/profile"
)

// setup creates the logger and reads the configuration. It exits on failure.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-autofill", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

// redacted returns a copy of the config without inline API keys.
func redacted(config *Config) Config {
	c := *config
	hide := func(in []registry.ProviderConfig) []registry.ProviderConfig {
		out := make([]registry.ProviderConfig, len(in))
		for i, p := range in {
			if p.APIKey != "" {
				p.APIKey = "***"
			}
			out[i] = p
		}
		return out
	}
	c.Providers.Primary = hide(c.Providers.Primary)
	c.Providers.Secondary = hide(c.Providers.Secondary)
	return c
}

// fieldWaterfall builds the short-timeout waterfall used to answer form fields.
// Every primary descriptor is tried before any secondary one.
func fieldWaterfall(ctx context.Context, config *Config, logger *zap.Logger) *waterfall.Waterfall {
	primary := registry.Build(ctx, config.Providers.Primary, nil, logger)
	secondary := registry.Build(ctx, config.Providers.Secondary, nil, logger)

	descriptors := registry.Chain(
		registry.Descriptors(primary, config.FieldTimeout),
		registry.Descriptors(secondary, config.FieldTimeout),
	)

	w := waterfall.New("fields", descriptors, config.Waterfall, logger)
	if w.Len() == 0 {
		logger.Warn("no ai providers configured; only deterministic tiers will answer fields")
	}
	return w
}

// contentGenerator builds the document generator: one waterfall over all primary
// providers followed by one standalone waterfall per secondary provider.
func contentGenerator(ctx context.Context, config *Config, logger *zap.Logger) *content.Generator {
	primary := registry.Build(ctx, config.Providers.Primary, nil, logger)

	var primaryBackend content.Backend
	if len(primary) > 0 {
		primaryBackend = waterfall.New("primary", registry.Descriptors(primary, config.DocumentTimeout), config.Waterfall, logger)
	}

	var secondaries []content.Backend
	for _, p := range registry.Build(ctx, config.Providers.Secondary, nil, logger) {
		secondaries = append(secondaries, waterfall.New(p.Config.Name, p.Descriptors(config.DocumentTimeout), config.Waterfall, logger))
	}

	if primaryBackend == nil && len(secondaries) == 0 {
		logger.Fatal("at least one ai provider is required",
			zap.String("hint", "configure providers.primary in the config file"),
		)
	}

	return content.New(primaryBackend, secondaries, logger, config.MaxLogLength)
}

func loadProfile(config *Config, logger *zap.Logger) *profile.Profile {
	path := strings.TrimSpace(config.ProfileFile)
	if path == "" {
		logger.Warn("profile file is not configured; every profile fact is unknown")
		return &profile.Profile{}
	}

	p, err := profile.Load(path)
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}
	return p
}

// readText reads a non-empty text input file.
func readText(path, what string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.Errorf("%s file is required", what)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s file", what)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.Errorf("%s file %s is empty", what, path)
	}
	return text, nil
}

// printJSON writes v to stdout.
func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}
