package cli

import (
	"context"
	"fmt"

	"atsblitz/internal/ai"
	"atsblitz/internal/analyzer"
	"atsblitz/internal/config"
	"atsblitz/internal/errors"
	"atsblitz/internal/titlestore"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "atsblitz",
	Short: "A CLI tool for scoring resume ATS readiness",
	Long: `ATS Blitz scores a resume's applicant-tracking-system readiness against
a target job title. It detects resume sections, extracts quantifiable metrics,
action verbs and date ranges, flags quality issues, and blends a content score
with a title-match score into a final 0-100 result with structured feedback.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// buildAnalyzer assembles the analysis pipeline with the collaborators the
// configuration enables. The returned cleanup closes the title store and AI
// service and must be called when the command finishes.
func buildAnalyzer(cfg *config.Config, logger *errors.Logger) (*analyzer.Analyzer, func(), error) {
	var opts []analyzer.Option
	var cleanups []func()

	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	if cfg.Store.Enabled {
		store, err := titlestore.Open(cfg.Store.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open title store: %w", err)
		}
		cleanups = append(cleanups, func() {
			if err := store.Close(); err != nil {
				logger.LogError(err, "Failed to close title store")
			}
		})
		opts = append(opts, analyzer.WithTitleStore(store))
	}

	if cfg.AI.Enabled {
		aiService, err := ai.NewService(&cfg.AI, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create AI service: %w", err)
		}
		cleanups = append(cleanups, func() {
			if err := aiService.Close(); err != nil {
				logger.LogError(err, "Failed to close AI service")
			}
		})
		opts = append(opts, analyzer.WithOpinionGenerator(aiService))
	}

	return analyzer.New(logger, opts...), cleanup, nil
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
