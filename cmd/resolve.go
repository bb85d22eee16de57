package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/resolver"
	"github.com/spigell/hh-autofill/internal/similarity"
)

const promptKeep = "Keep suggested value"

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve values for scraped form fields",
	Run: func(cmd *cobra.Command, _ []string) {
		resolve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("fields", "f", "", "yaml file with the scraped form fields")
	resolveCmd.Flags().BoolP("interactive", "i", false, "ask to confirm low confidence values")
}

type fieldsFile struct {
	Fields []form.Field `yaml:"fields"`
}

type resolvedField struct {
	Label  string           `json:"label"`
	Name   string           `json:"name,omitempty"`
	ID     string           `json:"id,omitempty"`
	Result form.MatchResult `json:"result"`
}

func resolve(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	fields, err := readFields(cmd.Flag("fields").Value.String())
	if err != nil {
		logger.Fatal("reading form fields", zap.Error(err))
	}

	p := loadProfile(config, logger)
	r := resolver.New(fieldWaterfall(ctx, config, logger), logger,
		resolver.WithMaxLogLength(config.MaxLogLength),
	)

	interactive := cmd.Flag("interactive").Value.String() == "true"

	results := make([]resolvedField, 0, len(fields))
	for _, f := range fields {
		result := r.MatchFieldValue(ctx, f, p)

		if interactive && result.Confidence == form.ConfidenceLow {
			confirmed, err := confirm(f, result)
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			result = confirmed
		}

		logger.Info("field resolved",
			zap.String("label", f.Label),
			zap.Stringer("value", result.Value),
			zap.String("confidence", string(result.Confidence)),
			zap.String("source", string(result.Source)),
		)
		results = append(results, resolvedField{Label: f.Label, Name: f.Name, ID: f.ID, Result: result})
	}

	if err := printJSON(results); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}
}

func readFields(path string) ([]form.Field, error) {
	if path == "" {
		return nil, errors.New("--fields is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading fields file")
	}

	var file fieldsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing fields file %s", path)
	}
	if len(file.Fields) == 0 {
		return nil, errors.Errorf("no fields found in %s", path)
	}
	return file.Fields, nil
}

// confirm lets the user keep or override a value the resolver is unsure about.
func confirm(f form.Field, suggested form.MatchResult) (form.MatchResult, error) {
	label := fmt.Sprintf("%s (suggested: %q)", f.Label, suggested.Value.String())

	switch {
	case f.Kind == form.KindCheckbox:
		_, choice, err := (&promptui.Select{Label: label, Items: []string{promptKeep, "Yes", "No"}}).Run()
		if err != nil {
			return suggested, err
		}
		if choice == promptKeep {
			return suggested, nil
		}
		return manual(form.Bool(choice == "Yes")), nil

	case f.Kind.HasOptions():
		var options []string
		for _, o := range f.Options {
			if !similarity.IsPlaceholder(o) {
				options = append(options, o)
			}
		}
		if len(options) == 0 {
			return suggested, nil
		}

		i, choice, err := (&promptui.Select{Label: label, Items: append([]string{promptKeep}, options...)}).Run()
		if err != nil {
			return suggested, err
		}
		if i == 0 {
			return suggested, nil
		}
		return manual(form.Text(choice)), nil

	default:
		answer, err := (&promptui.Prompt{Label: f.Label, Default: suggested.Value.String(), AllowEdit: true}).Run()
		if err != nil {
			return suggested, err
		}
		if answer == suggested.Value.String() {
			return suggested, nil
		}
		return manual(form.Text(answer)), nil
	}
}

func manual(v form.Value) form.MatchResult {
	return form.MatchResult{Value: v, Confidence: form.ConfidenceHigh, Source: form.SourceManual}
}
