package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/riji/internal/importer"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/models"
)

type ImportCmd struct {
	Path string `arg:"" help:"UTF-8 text file to import, or '-' for stdin."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}

	var (
		text string
		err  error
	)
	if c.Path == "-" {
		text, err = importer.ReadFrom(context.Background(), ctx.input())
	} else {
		text, err = importer.ReadSource(context.Background(), c.Path)
	}
	if err != nil {
		return err
	}

	// Imports can add many entries at once; keep a copy of the journal as it was
	ctx.PerformAutomaticBackup()

	res, err := ctx.Journal.Import(importer.Parse(text, ctx.now()))
	if err != nil {
		return err
	}
	logger.Info("Import finished", "source", c.Path, "parsed", res.Parsed, "added", res.Added)

	if res.Outcome() == importer.OutcomeNoData {
		return errors.New(res.Message())
	}
	fmt.Fprintln(ctx.Out, res.Message())
	return nil
}

type ExportCmd struct {
	Format string `short:"f" help:"Output format." enum:"text,json" default:"text"`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Tag    string `short:"t" help:"Only export entries with this tag."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	var entries []models.Entry
	for _, e := range ctx.Journal.Entries() {
		if c.Tag == "" || e.HasTag(c.Tag) {
			entries = append(entries, e)
		}
	}

	w := ctx.Out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := c.write(w, entries); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Output != "" {
		fmt.Fprintf(ctx.Out, "✓ Exported %d entries to %s\n", len(entries), c.Output)
	}
	return nil
}

func (c *ExportCmd) write(w io.Writer, entries []models.Entry) error {
	if c.Format == "json" {
		if entries == nil {
			entries = []models.Entry{}
		}
		return writeJSON(w, entries)
	}
	return importer.WriteText(w, entries)
}
