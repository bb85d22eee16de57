package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hh-autofill/internal/ai/registry"
	"github.com/spigell/hh-autofill/internal/ai/waterfall"
)

const (
	app       = "hh-autofill"
	envPrefix = "HH_AUTOFILL"

	defaultFieldTimeout    = 15 * time.Second
	defaultDocumentTimeout = 60 * time.Second
)

type Config struct {
	ProfileFile     string           `mapstructure:"profile-file"`
	MaxLogLength    int              `mapstructure:"max-log-length"`
	FieldTimeout    time.Duration    `mapstructure:"field-timeout"`
	DocumentTimeout time.Duration    `mapstructure:"document-timeout"`
	Waterfall       waterfall.Config `mapstructure:"waterfall"`
	Providers       ProvidersConfig  `mapstructure:"providers"`
}

// ProvidersConfig lists backends in priority order. Every secondary entry
// becomes a standalone fallback for document generation.
type ProvidersConfig struct {
	Primary   []registry.ProviderConfig `mapstructure:"primary"`
	Secondary []registry.ProviderConfig `mapstructure:"secondary"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-autofill resolves job application form fields and writes application content with a waterfall of AI providers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-autofill.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "applicant profile file")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("profile-file", rootCmd.PersistentFlags().Lookup("profile"))
}

func initConfig() {
	// Only the version command works without configuration.
	if versionCmd.CalledAs() != "" {
		return
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("field-timeout", defaultFieldTimeout)
	viper.SetDefault("document-timeout", defaultDocumentTimeout)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without an explicit --config a missing default file is fine: everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Waterfall.MaxLogLength == 0 {
		config.Waterfall.MaxLogLength = config.MaxLogLength
	}

	return config, nil
}
