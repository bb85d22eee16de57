package cmd

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hh-autofill/internal/content"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score how well a resume fits a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd, func(ctx context.Context, g *content.Generator, job string) (any, error) {
			resume, err := readText(cmd.Flag("resume").Value.String(), "resume")
			if err != nil {
				return nil, err
			}
			return g.GenerateMatchAnalysis(ctx, job, resume)
		})
	},
}

var essayCmd = &cobra.Command{
	Use:   "essay",
	Short: "Write an application essay for a job",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd, func(ctx context.Context, g *content.Generator, job string) (any, error) {
			resume, err := readText(cmd.Flag("resume").Value.String(), "resume")
			if err != nil {
				return nil, err
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return nil, err
			}
			essay, err := g.GenerateEssay(ctx, job, resume, limit)
			if err != nil {
				return nil, err
			}
			return map[string]string{"essay": essay}, nil
		})
	},
}

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Rewrite resume bullets for a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd, func(ctx context.Context, g *content.Generator, job string) (any, error) {
			text, err := readText(cmd.Flag("bullets").Value.String(), "bullets")
			if err != nil {
				return nil, err
			}
			bullets, err := g.TailorBullets(ctx, job, parseBullets(text))
			if err != nil {
				return nil, err
			}
			return map[string][]string{"bullets": bullets}, nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{matchCmd, essayCmd, tailorCmd} {
		rootCmd.AddCommand(c)
		c.Flags().String("job", "", "file with the job description")
	}

	matchCmd.Flags().String("resume", "", "file with the resume text")
	essayCmd.Flags().String("resume", "", "file with the resume text")
	essayCmd.Flags().Int("limit", 0, "maximum essay length in characters, 0 for no limit")
	tailorCmd.Flags().String("bullets", "", "file with resume bullets, one per line")
}

type generateFunc func(ctx context.Context, g *content.Generator, job string) (any, error)

func generate(cmd *cobra.Command, fn generateFunc) {
	ctx := context.Background()
	logger, config := setup()

	job, err := readText(cmd.Flag("job").Value.String(), "job description")
	if err != nil {
		logger.Fatal("reading inputs", zap.Error(err))
	}

	result, err := fn(ctx, contentGenerator(ctx, config, logger), job)
	if err != nil {
		var exhausted *content.GenerationExhaustedError
		if errors.As(err, &exhausted) {
			logger.Fatal("generation failed",
				zap.String("operation", exhausted.Operation),
				zap.Int("attempts", exhausted.Attempts),
				zap.Error(exhausted.Err),
			)
		}
		logger.Fatal("generation failed", zap.String("command", cmd.Name()), zap.Error(err))
	}

	if err := printJSON(result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}

// parseBullets splits text into bullets, dropping list markers.
func parseBullets(text string) []string {
	var bullets []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimLeft(line, "-*•")
		if line = strings.TrimSpace(line); line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
