package common

import (
	"context"

	"atsblitz/internal/errors"
	"atsblitz/internal/extract"
	"atsblitz/internal/types"
)

// AnalysisFunc is the signature of a resume analysis operation.
type AnalysisFunc func(ctx context.Context, resumeText, jobTitle string) types.AnalysisResult

// RunAnalysisCommand encapsulates the common logic for file-based analysis
// commands: validate the file, extract its text, run the analysis and write
// the formatted result.
func RunAnalysisCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumeFile, jobTitle string,
	analyze AnalysisFunc,
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	if err := fileProcessor.ValidateResumeFile(resumeFile); err != nil {
		return err
	}

	resumeText, err := extract.FromFile(resumeFile)
	if err != nil {
		return err
	}

	logger.Debug("Starting resume analysis",
		"resume_file", resumeFile,
		"job_title", jobTitle,
		"resume_length", len(resumeText),
		"output_format", cmdConfig.OutputFormat)

	result := analyze(ctx, resumeText, jobTitle)

	return outputHandler.HandleOutput(result, cmdConfig)
}
