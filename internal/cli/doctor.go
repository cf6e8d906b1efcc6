package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/riji/internal/backup"
	"github.com/julianstephens/riji/internal/lock"
	"github.com/julianstephens/riji/internal/migration"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/storage"
	"github.com/julianstephens/riji/internal/validation"
	"github.com/julianstephens/riji/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	out := ctx.Out
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false

	// Check 1: journal readable
	entries, err := checkJournalReadable(ctx)
	if err != nil {
		fmt.Fprintf(out, "❌ Journal readable: FAIL\n")
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(out, "✓ Journal readable: OK (%d entries)\n", len(entries))
	}
	readable := err == nil

	// Check 2: schema version valid
	if err := checkSchemaVersion(ctx); err != nil {
		fmt.Fprintf(out, "❌ Schema version: FAIL\n")
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(out, "✓ Schema version: OK\n")
	}

	// Check 3: migrations complete
	if err := checkMigrationsComplete(ctx); err != nil {
		fmt.Fprintf(out, "❌ Migrations complete: FAIL\n")
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(out, "✓ Migrations complete: OK\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Fprintf(out, "⚠ Backups present: WARNING\n")
		fmt.Fprintf(out, "   %v\n", err)
	} else {
		fmt.Fprintf(out, "✓ Backups present: OK\n")
	}

	// Check 5: lock free (warning only)
	if err := checkLockFree(ctx); err != nil {
		fmt.Fprintf(out, "⚠ Journal lock: WARNING\n")
		fmt.Fprintf(out, "   %v\n", err)
	} else {
		fmt.Fprintf(out, "✓ Journal lock: OK\n")
	}

	// Check 6: validation passes (only if the journal could be read)
	if readable {
		result := validation.New().ValidateEntries(entries)
		switch {
		case result.HasErrors():
			fmt.Fprintf(out, "❌ Data validation: FAIL\n")
			fmt.Fprintf(out, "   %d problem(s), run 'riji validate' for details\n", len(result.Conflicts))
			hasError = true
		case result.HasConflicts():
			fmt.Fprintf(out, "⚠ Data validation: WARNING\n")
			fmt.Fprintf(out, "   %d warning(s), run 'riji validate' for details\n", len(result.Conflicts))
		default:
			fmt.Fprintf(out, "✓ Data validation: OK\n")
		}
	} else {
		fmt.Fprintf(out, "⊘ Data validation: SKIPPED (journal not readable)\n")
	}

	// Check 7: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Fprintf(out, "❌ Clock/timezone: FAIL\n")
		fmt.Fprintf(out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(out, "✓ Clock/timezone: OK\n")
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

// checkJournalReadable loads the raw records, bypassing the repair the
// journal store applies, so validation sees what is on disk.
func checkJournalReadable(ctx *Context) ([]models.Entry, error) {
	entries, err := ctx.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
	}

	return entries, nil
}

func schemaVersions(ctx *Context) (current, latest int, ok bool, err error) {
	sqliteStore, isSQLite := ctx.Store.(*storage.SQLiteStore)
	if !isSQLite {
		// JSON journals have no schema
		return 0, 0, false, nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return 0, 0, false, fmt.Errorf("database connection is nil")
	}

	runner := migration.NewRunner(db, migrations.FS)
	current, err = runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err = runner.GetLatestVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'riji backup create'")
	}

	return nil
}

// checkLockFree briefly takes the journal lock, which also clears a stale one
func checkLockFree(ctx *Context) error {
	if ctx.lock != nil {
		return nil
	}
	l, err := lock.Acquire(filepath.Dir(ctx.Store.GetConfigPath()))
	if errors.Is(err, lock.ErrLocked) {
		return fmt.Errorf("another riji session has the journal open: %w", err)
	}
	if err != nil {
		return err
	}
	return l.Release()
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()

	// Entry titles and ids come from the clock
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Fprintf(ctx.Out, "   Note: timezone is UTC, titles use the UTC date\n")
	}

	return nil
}
