package cli

import (
	"fmt"

	"atsblitz/internal/common"
	"atsblitz/internal/extract"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-file]",
	Short: "Extract plain text from a resume document",
	Long: `Extract plain text from a resume document (PDF, text or markdown).

By default the extracted text is printed to stdout. When --job-title is given
the extracted text is fed straight into the analysis pipeline and the full
scoring result is produced instead.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunExtract,
	RunE:    runExtract,
}

var (
	extractConfig   common.CommandConfig
	extractJobTitle string
)

func init() {
	extractCmd.Flags().StringVarP(&extractJobTitle, "job-title", "j", "", "Analyze the extracted text against this job title")
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format for analysis results: json, text, or markdown")
}

func preRunExtract(cmd *cobra.Command, args []string) error {
	if extractJobTitle == "" {
		return nil
	}

	cfg := getConfigFromContext(cmd.Context())
	if extractConfig.OutputFormat == "" {
		extractConfig.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	text, err := extract.FromFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	logger.Debug("Extracted resume text",
		"resume_file", args[0],
		"text_length", len(text))

	if extractJobTitle == "" {
		if extractConfig.OutputFile != "" {
			fileProcessor := common.NewFileProcessor(logger)
			return fileProcessor.WriteFile(extractConfig.OutputFile, text)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	a, cleanup, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result := a.Analyze(cmd.Context(), text, extractJobTitle)

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(result, extractConfig)
}
