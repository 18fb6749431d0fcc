package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"barkeep/core/config"
	"barkeep/core/logger"
	"barkeep/feature/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for backup commands
	backupOut    string
	backupMode   string
	backupObject string
	backupKeep   int
	backupYes    bool
)

// backupCmd is the parent command for all backup operations.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, import, and copy catalog backups",
	Long: `Backup the ingredient and recipe catalogs to a JSON document, restore
from one, and optionally copy documents to/from an S3-compatible bucket.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog to a dated backup file",
	Long: `Export writes both catalog collections to a JSON file named
bar_backup_YYYY-MM-DD.json in the output directory.`,
	RunE: runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply a backup file to the catalog (merge or overwrite)",
	Long: `Import reads a backup file and applies it to the catalog.

Merge mode (default) appends records that do not duplicate existing ones,
matching by id and by name (case- and whitespace-insensitive). Overwrite
mode replaces both collections wholesale and asks for confirmation.

Examples:
  # Merge a backup into the catalog
  backup import bar_backup_2026-08-28.json

  # Replace the catalog (with interactive confirmation)
  backup import bar_backup_2026-08-28.json --mode overwrite

  # Replace without prompting (non-interactive)
  backup import bar_backup_2026-08-28.json --mode overwrite --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Export the catalog and upload it to the offsite bucket",
	RunE:  runBackupPush,
}

var backupPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Restore the catalog from an offsite backup (overwrite)",
	Long: `Pull downloads a backup document from the offsite bucket and
overwrites the catalog with it. The latest document is used unless
--object names a specific one.`,
	RunE: runBackupPull,
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old offsite backups, keeping the most recent ones",
	RunE:  runBackupPrune,
}

func init() {
	backupExportCmd.Flags().StringVar(&backupOut, "out", ".", "Output directory for the backup file")
	backupImportCmd.Flags().StringVar(&backupMode, "mode", "merge", "Import mode: merge or overwrite")
	backupImportCmd.Flags().BoolVar(&backupYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	backupPullCmd.Flags().StringVar(&backupObject, "object", "", "Backup filename to pull (latest when empty)")
	backupPullCmd.Flags().BoolVar(&backupYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	backupPruneCmd.Flags().IntVar(&backupKeep, "keep", 10, "Number of recent backups to keep")
	backupPruneCmd.Flags().BoolVar(&backupYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupCmd.AddCommand(backupPushCmd)
	backupCmd.AddCommand(backupPullCmd)
	backupCmd.AddCommand(backupPruneCmd)
	RootCmd.AddCommand(backupCmd)
}

// backupEnv loads configuration and builds the backup service over the
// configured store.
func backupEnv() (*config.Config, *zap.Logger, *backup.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := openRepository(cfg, l)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, backup.NewService(repo, l), nil
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	_, l, svc, err := backupEnv()
	if err != nil {
		return err
	}

	filename, data, err := svc.Export()
	if err != nil {
		return err
	}

	path := filepath.Join(backupOut, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	l.Info("Backup written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	mode, err := backup.ParseMode(backupMode)
	if err != nil {
		return err
	}

	_, l, svc, err := backupEnv()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if mode == backup.ModeOverwrite {
		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	summary, err := svc.Import(data, mode)
	if err != nil {
		return err
	}

	l.Info("Import complete",
		zap.String("mode", string(mode)),
		zap.Int("ingredients_added", summary.IngredientsAdded),
		zap.Int("ingredients_skipped", summary.IngredientsSkipped),
		zap.Int("recipes_added", summary.RecipesAdded),
		zap.Int("recipes_skipped", summary.RecipesSkipped),
	)
	return nil
}

// backupOffsite builds the offsite component, failing when storage is not
// enabled in configuration.
func backupOffsite(cfg *config.Config, l *zap.Logger) (*backup.Offsite, error) {
	offsite, err := newOffsite(cfg, l)
	if err != nil {
		return nil, err
	}
	if offsite == nil {
		return nil, fmt.Errorf("offsite backup is not enabled (set STORAGE_ENABLED=true)")
	}
	return offsite, nil
}

func runBackupPush(cmd *cobra.Command, args []string) error {
	cfg, l, svc, err := backupEnv()
	if err != nil {
		return err
	}
	offsite, err := backupOffsite(cfg, l)
	if err != nil {
		return err
	}

	filename, data, err := svc.Export()
	if err != nil {
		return err
	}
	if err := offsite.Push(context.Background(), filename, data); err != nil {
		return err
	}

	l.Info("Backup pushed", zap.String("filename", filename))
	return nil
}

func runBackupPull(cmd *cobra.Command, args []string) error {
	cfg, l, svc, err := backupEnv()
	if err != nil {
		return err
	}
	offsite, err := backupOffsite(cfg, l)
	if err != nil {
		return err
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	filename, data, err := offsite.Pull(context.Background(), backupObject)
	if err != nil {
		return err
	}

	summary, err := svc.Import(data, backup.ModeOverwrite)
	if err != nil {
		return err
	}

	l.Info("Catalog restored",
		zap.String("filename", filename),
		zap.Int("ingredients", summary.IngredientsAdded),
		zap.Int("recipes", summary.RecipesAdded),
	)
	return nil
}

func runBackupPrune(cmd *cobra.Command, args []string) error {
	cfg, l, _, err := backupEnv()
	if err != nil {
		return err
	}
	offsite, err := backupOffsite(cfg, l)
	if err != nil {
		return err
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	removed, err := offsite.Prune(context.Background(), backupKeep)
	if err != nil {
		return err
	}

	l.Info("Prune complete", zap.Int("removed", len(removed)), zap.Int("kept", backupKeep))
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if backupYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
