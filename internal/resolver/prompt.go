package resolver

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/hh-autofill/internal/form"
	"github.com/spigell/hh-autofill/internal/profile"
	"github.com/spigell/hh-autofill/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

func buildPrompt(f form.Field, options []string, p *profile.Profile) string {
	label := utils.SingleLine(f.Label)
	if label == "" {
		label = utils.SingleLine(f.Placeholder)
	}

	var opts strings.Builder
	if len(options) > 0 {
		opts.WriteString("- Options (choose exactly one):\n")
		for _, o := range options {
			fmt.Fprintf(&opts, "  - %s\n", utils.SingleLine(o))
		}
	}

	var facts strings.Builder
	for _, fact := range p.Facts() {
		fmt.Fprintf(&facts, "- %s: %s\n", fact.Label, fact.Value)
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{FIELD_LABEL}}", label)
	prompt = strings.ReplaceAll(prompt, "{{FIELD_KIND}}", string(f.Kind))
	prompt = strings.ReplaceAll(prompt, "{{FIELD_REQUIRED}}", strconv.FormatBool(f.Required))
	prompt = strings.ReplaceAll(prompt, "{{FIELD_OPTIONS}}", opts.String())
	prompt = strings.ReplaceAll(prompt, "{{PROFILE_FACTS}}", facts.String())
	return prompt
}
