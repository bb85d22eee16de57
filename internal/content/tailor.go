package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hh-autofill/internal/ai"
)

const (
	OperationTailor = "tailor_bullets"

	tailorTokens = 1024
)

//go:embed prompts/tailor.md
var tailorPrompt string

// TailorBullets rewrites résumé bullets for a job. The result has exactly as
// many bullets as the input, in the same order.
func (g *Generator) TailorBullets(ctx context.Context, jobDescription string, bullets []string) ([]string, error) {
	bullets = cleanStrings(bullets)
	if len(bullets) == 0 {
		return nil, errors.New("no bullets to tailor")
	}

	var list strings.Builder
	for i, b := range bullets {
		fmt.Fprintf(&list, "%d. %s\n", i+1, b)
	}

	prompt := strings.ReplaceAll(tailorPrompt, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
	prompt = strings.ReplaceAll(prompt, "{{BULLET_COUNT}}", fmt.Sprint(len(bullets)))
	prompt = strings.ReplaceAll(prompt, "{{BULLETS}}", strings.TrimRight(list.String(), "\n"))

	var tailored []string
	_, err := g.payload(ctx, OperationTailor, ai.Request{
		Prompt:          prompt,
		MaxOutputTokens: tailorTokens,
		Temperature:     ai.Float(0.4),
	}, func(obj map[string]any) error {
		var out struct {
			Bullets []string `json:"bullets"`
		}
		if err := decode(obj, &out); err != nil {
			return err
		}
		got := cleanStrings(out.Bullets)
		if len(got) != len(bullets) {
			return fmt.Errorf("expected %d bullets, got %d", len(bullets), len(got))
		}
		tailored = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tailored, nil
}
