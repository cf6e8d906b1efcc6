package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/riji/internal/constants"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/search"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type ListCmd struct {
	Search string `short:"s" help:"Only entries whose title or text contains this."`
	Tag    string `short:"t" help:"Only entries with this tag."`
	Limit  int    `short:"n" help:"Show at most this many entries (0 for all)."`
	JSON   bool   `help:"Print the entries as JSON."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	entries := ctx.Journal.FilterAndSort(c.Search, c.Tag)
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	if c.JSON {
		return writeJSON(ctx.Out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(ctx.Out, "No entries found")
		return nil
	}
	for _, e := range entries {
		printEntryRow(ctx.Out, e)
	}
	return nil
}

type TagsCmd struct{}

func (c *TagsCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	counts := ctx.Journal.Tags()
	if len(counts) == 0 {
		fmt.Fprintln(ctx.Out, "No tags found")
		return nil
	}
	for _, tc := range counts {
		fmt.Fprintf(ctx.Out, "  %s  %s\n", tagStyle.Render(tc.Tag), metaStyle.Render(fmt.Sprintf("%d", tc.Count)))
	}
	return nil
}

type SearchCmd struct {
	Query string `arg:"" help:"Words to search for in titles, tags and text."`
	Limit int    `short:"n" help:"Maximum number of results." default:"${search_limit}"`
	JSON  bool   `help:"Print the hits as JSON."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	limit := c.Limit
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}
	hits, err := search.Query(ctx.Journal.Entries(), c.Query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.JSON {
		return writeJSON(ctx.Out, hits)
	}

	if len(hits) == 0 {
		fmt.Fprintf(ctx.Out, "No entries match %q\n", c.Query)
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(ctx.Out, "%s ", metaStyle.Render(fmt.Sprintf("%.2f", h.Score)))
		printEntryRow(ctx.Out, h.Entry)
	}
	return nil
}

// printEntryRow prints the one-line summary used by list and search
func printEntryRow(w io.Writer, e models.Entry) {
	fmt.Fprintf(w, "%s %s %s  %s\n",
		metaStyle.Render(fmt.Sprintf("[%d]", e.ID)),
		e.Mood,
		titleStyle.Render(e.Title),
		tagStyle.Render(strings.Join(e.EffectiveTags(), ", ")),
	)
	if preview := e.Preview(constants.PreviewLength); preview != "" {
		fmt.Fprintf(w, "    %s\n", preview)
	}
}

func printEntry(w io.Writer, e models.Entry) {
	fmt.Fprintf(w, "%s %s\n", e.Mood, titleStyle.Render(e.Title))
	fmt.Fprintf(w, "%s\n", tagStyle.Render(strings.Join(e.EffectiveTags(), ", ")))
	fmt.Fprintf(w, "%s\n\n", metaStyle.Render(fmt.Sprintf("ID %d · %s", e.ID, e.Date)))
	fmt.Fprintln(w, e.Content)
}

func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
