package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-base64] [job-title-base64]",
	Short: "Score a resume against a job title",
	Long: `Score a resume's ATS readiness against a target job title and print the
full analysis as a single JSON document on stdout.

Both arguments are base64-encoded so that resume text with newlines, quotes
and shell metacharacters can be passed safely. Analysis failures (empty
resume, empty title) are reported inside the JSON document with
status "error" and exit code 0; only process-level failures such as invalid
base64 exit non-zero.`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumeText, err := base64.StdEncoding.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("failed to decode resume text: %w", err)
	}

	jobTitle, err := base64.StdEncoding.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("failed to decode job title: %w", err)
	}

	a, cleanup, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result := a.Analyze(cmd.Context(), string(resumeText), string(jobTitle))

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}
