package cli

import (
	"fmt"

	"atsblitz/internal/common"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume file for ATS readiness",
	Long: `Analyze a resume file (plain text, markdown or PDF) against a target
job title.

The analysis includes:
- Section detection (contact, summary, experience, education, skills, projects)
- Quantifiable metrics, action verbs and date ranges
- Quality issues (generic phrases, first-person pronouns, passive voice)
- Title-match scoring against the standardized job title
- Prioritized improvement suggestions`,
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAnalyze,
	RunE:    runAnalyze,
}

var (
	analyzeConfig   common.CommandConfig
	analyzeJobTitle string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobTitle, "job-title", "j", "", "Target job title to score against (required)")
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	_ = analyzeCmd.MarkFlagRequired("job-title")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func preRunAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())

	// Apply default format if not specified
	if analyzeConfig.OutputFormat == "" {
		analyzeConfig.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	a, cleanup, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	err = common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		analyzeJobTitle,
		a.Analyze,
	)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	logger.Info("Resume analysis completed successfully")
	return nil
}
