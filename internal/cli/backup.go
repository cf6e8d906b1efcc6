package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/riji/internal/backup"
	"github.com/julianstephens/riji/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if _, err := os.Stat(ctx.Store.GetConfigPath()); err != nil {
		return fmt.Errorf("nothing to back up at %s: %w", ctx.Store.GetConfigPath(), err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Out, "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		filename := filepath.Base(b.Path)
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", timestamp, filename, sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath := mgr.ResolveBackup(c.BackupFile)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		fmt.Fprintln(ctx.Out, "⚠️  WARNING: This will replace your current journal with the backup.")
		fmt.Fprintln(ctx.Out, "A backup of your current journal will be created before restoring.")
		fmt.Fprintf(ctx.Out, "\nRestore from: %s\n", filepath.Base(backupPath))
		yes, err := ctx.confirm("Continue?")
		if err != nil {
			return err
		}
		if !yes {
			fmt.Fprintln(ctx.Out, "Restore cancelled.")
			return nil
		}
	}

	// Nobody else may hold the journal while it is replaced
	if err := ctx.acquireLock(); err != nil {
		return err
	}
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(ctx.Err, "Warning: failed to close journal: %v\n", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if safety != "" {
		fmt.Fprintf(ctx.Out, "Previous journal saved as: %s\n", filepath.Base(safety))
	}
	fmt.Fprintln(ctx.Out, "✓ Journal restored successfully!")
	return nil
}
