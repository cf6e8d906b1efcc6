package cli

import (
	"fmt"

	"github.com/julianstephens/riji/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Save the journal back with duplicate ids dropped and legacy fields filled in."`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	fmt.Fprintln(ctx.Out, "Validating entries...")
	result := validation.New().ValidateEntries(entries)

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, result.FormatReport())

	if !cmd.Fix || !result.HasConflicts() {
		return nil
	}

	if err := ctx.LoadForWrite(); err != nil {
		return err
	}
	if err := ctx.Journal.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "\n✓ Saved %d repaired entries. Warnings about titles and content need manual edits.\n", ctx.Journal.Len())
	return nil
}
