package content

import (
	"context"
	_ "embed"
	"strconv"
	"strings"
	"unicode"

	"github.com/spigell/hh-autofill/internal/ai"
	"github.com/spigell/hh-autofill/internal/extract"
)

const (
	OperationEssay = "essay"

	essayTokens = 2048
)

//go:embed prompts/essay.md
var essayPrompt string

// GenerateEssay writes an application essay of at most charLimit characters.
// A non-positive charLimit means no limit. Models may answer either with
// {"essay": "..."} or with the essay as plain text.
func (g *Generator) GenerateEssay(ctx context.Context, jobDescription, resumeText string, charLimit int) (string, error) {
	limit := "no strict limit"
	if charLimit > 0 {
		limit = strconv.Itoa(charLimit) + " characters"
	}

	prompt := strings.ReplaceAll(essayPrompt, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", strings.TrimSpace(resumeText))
	prompt = strings.ReplaceAll(prompt, "{{CHAR_LIMIT}}", limit)

	raw, err := g.text(ctx, OperationEssay, ai.Request{
		Prompt:          prompt,
		MaxOutputTokens: essayTokens,
		Temperature:     ai.Float(0.7),
	})
	if err != nil {
		return "", err
	}

	return truncateWords(essayText(raw), charLimit), nil
}

func essayText(raw string) string {
	if obj, ok := extract.ExtractJSON(raw); ok {
		var out struct {
			Essay string `json:"essay"`
		}
		if err := decode(obj, &out); err == nil && strings.TrimSpace(out.Essay) != "" {
			return strings.TrimSpace(out.Essay)
		}
	}
	return strings.TrimSpace(extract.StripCodeFence(raw))
}

// truncateWords cuts s to at most limit runes, preferring the last word boundary.
func truncateWords(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}

	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace)
}
