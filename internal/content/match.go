package content

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/spigell/hh-autofill/internal/ai"
)

const (
	OperationMatchAnalysis = "match_analysis"

	topSkillsCount = 3
	matchTokens    = 1024
)

//go:embed prompts/match.md
var matchPrompt string

// MatchAnalysis scores how well a résumé fits a job.
type MatchAnalysis struct {
	Score     int      `json:"score"`
	Pros      []string `json:"pros"`
	Cons      []string `json:"cons"`
	TopSkills []string `json:"topSkills"`
}

// GenerateMatchAnalysis scores resumeText against jobDescription.
// The score is clamped to 0..100 and at most three top skills are kept.
func (g *Generator) GenerateMatchAnalysis(ctx context.Context, jobDescription, resumeText string) (*MatchAnalysis, error) {
	prompt := strings.ReplaceAll(matchPrompt, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", strings.TrimSpace(resumeText))

	var analysis *MatchAnalysis
	_, err := g.payload(ctx, OperationMatchAnalysis, ai.Request{
		Prompt:          prompt,
		MaxOutputTokens: matchTokens,
		Temperature:     ai.Float(0.2),
	}, func(obj map[string]any) error {
		a, err := parseMatchAnalysis(obj)
		if err != nil {
			return err
		}
		analysis = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func parseMatchAnalysis(obj map[string]any) (*MatchAnalysis, error) {
	if v, ok := lookup(obj, "score"); !ok || v == nil {
		return nil, errors.New("score is missing")
	}

	var a MatchAnalysis
	if err := decode(obj, &a); err != nil {
		return nil, err
	}

	a.Score = min(max(a.Score, 0), 100)
	a.Pros = cleanStrings(a.Pros)
	a.Cons = cleanStrings(a.Cons)
	a.TopSkills = cleanStrings(a.TopSkills)
	if len(a.TopSkills) > topSkillsCount {
		a.TopSkills = a.TopSkills[:topSkillsCount]
	}
	return &a, nil
}
