package cmd

import (
	"fmt"

	"barkeep/core/config"
	"barkeep/core/logger"

	"github.com/spf13/cobra"
)

// resetCmd wipes the catalog and restores default preferences.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the catalog and restore default preferences",
	Long: `Reset deletes every ingredient and recipe and restores the built-in
technique, tag, glass, and category vocabularies. Requires confirmation.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&backupYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := openRepository(cfg, l)
	if err != nil {
		return err
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	repo.Reset()
	l.Info("Catalog reset to defaults")
	return nil
}
