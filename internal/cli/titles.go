package cli

import (
	"fmt"
	"os"

	"atsblitz/internal/titlestore"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Manage the standardized job-title lookup store",
	Long: `Manage the SQLite-backed lookup store of standardized job titles.

The store maps raw occupation titles to standardized forms used by the
title-match scorer. Titles observed during analysis are counted and promoted
to standardized entries once seen often enough.`,
}

var titlesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the title store schema",
	RunE:  runTitlesInit,
}

var titlesImportCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Import occupation titles from a CSV catalogue",
	Long: `Import occupation titles from a CSV catalogue with code and title columns
(O*NET format). Each title is cleaned before insert: catalogue qualifier
suffixes are dropped, "and" becomes "&" and the last word is singularized.
Rows are upserted keyed by the original occupation code.`,
	Args: cobra.ExactArgs(1),
	RunE: runTitlesImport,
}

var titlesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the title store contents",
	RunE:  runTitlesVerify,
}

func init() {
	titlesCmd.AddCommand(titlesInitCmd)
	titlesCmd.AddCommand(titlesImportCmd)
	titlesCmd.AddCommand(titlesVerifyCmd)
}

// openStore opens the configured title store for a titles subcommand.
func openStore(cmd *cobra.Command) (*titlestore.Store, error) {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	store, err := titlestore.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open title store: %w", err)
	}
	return store, nil
}

func runTitlesInit(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Title store initialized at %s\n", cfg.Store.Path)
	return nil
}

func runTitlesImport(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close CSV file", "file", args[0], "error", err.Error())
		}
	}()

	result, err := store.ImportCSV(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	logger.Info("Title import completed",
		"file", args[0],
		"imported", result.Imported,
		"skipped", result.Skipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d titles (%d rows skipped)\n", result.Imported, result.Skipped)
	return nil
}

func runTitlesVerify(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read store stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Standardized titles: %d\n", stats.StandardizedTitles)
	fmt.Fprintf(out, "Observed titles:     %d\n", stats.ObservedTitles)
	fmt.Fprintf(out, "Learned titles:      %d\n", stats.LearnedTitles)

	bad, err := store.Verify(cmd.Context())
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if len(bad) > 0 {
		fmt.Fprintf(out, "Inconsistent entries: %d\n", len(bad))
		for _, code := range bad {
			fmt.Fprintf(out, "  %s\n", code)
		}
		return fmt.Errorf("title store verification found %d inconsistent entries", len(bad))
	}

	fmt.Fprintln(out, "Store verification passed")
	return nil
}
