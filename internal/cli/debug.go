package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/riji/internal/backup"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/storage"
)

type DebugCmd struct {
	Path      *DebugPathCmd      `cmd:"" help:"Show journal, backup and log paths."`
	DumpEntry *DebugDumpEntryCmd `cmd:"" help:"Dump an entry record as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()

	kind := "json"
	if _, ok := ctx.Store.(*storage.SQLiteStore); ok {
		kind = "sqlite"
	}

	// Output in machine-readable format
	return writeJSON(ctx.Out, map[string]string{
		"path":    path,
		"storage": kind,
		"backups": backup.NewManager(path).GetBackupDir(),
		"logs":    filepath.Join(filepath.Dir(path), "logs"),
	})
}

type DebugDumpEntryCmd struct {
	ID int64 `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	e, ok := ctx.Journal.Find(cmd.ID)
	if !ok {
		return fmt.Errorf("%w: %d", journal.ErrNotFound, cmd.ID)
	}
	return writeJSON(ctx.Out, e)
}
