package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/riji/internal/classifier"
	"github.com/julianstephens/riji/internal/importer"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

type NewCmd struct {
	Content string   `arg:"" optional:"" help:"Entry text. Read from stdin when omitted."`
	Title   string   `short:"t" help:"Entry title. Defaults to today's date."`
	Tags    []string `short:"g" help:"Comma-separated tags. Inferred from the text when omitted."`
	Mood    string   `short:"m" help:"Mood marker or name (happy, sad, angry, excited, calm). Inferred when omitted."`
}

func (c *NewCmd) Run(ctx *Context) error {
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}

	content, err := ctx.contentOrStdin(c.Content)
	if err != nil {
		return err
	}

	title := c.Title
	if strings.TrimSpace(title) == "" {
		title = titledate.Title(ctx.now())
	}
	tags := c.Tags
	if len(tags) == 0 {
		tags = classifier.Tags(content)
	}
	mood := classifier.Mood(content)
	if c.Mood != "" {
		if mood, err = models.ParseMood(c.Mood); err != nil {
			return err
		}
	}

	e, err := ctx.Journal.Create(journal.Draft{
		Title:   title,
		Tags:    tags,
		Content: content,
		Mood:    mood,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Added entry: %s (ID: %d) [%s]\n", e.Title, e.ID, strings.Join(e.Tags, ", "))
	return nil
}

type EditCmd struct {
	ID      int64    `arg:"" help:"ID of the entry to edit."`
	Title   string   `short:"t" help:"New title."`
	Tags    []string `short:"g" help:"New comma-separated tags."`
	Mood    string   `short:"m" help:"New mood marker or name."`
	Content string   `short:"c" help:"New entry text."`
	Stdin   bool     `help:"Read the new entry text from stdin."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}

	e, ok := ctx.Journal.Find(c.ID)
	if !ok {
		return fmt.Errorf("%w: %d", journal.ErrNotFound, c.ID)
	}

	d := journal.Draft{Title: e.Title, Tags: e.EffectiveTags(), Content: e.Content, Mood: e.Mood}
	if c.Title != "" {
		d.Title = c.Title
	}
	if len(c.Tags) > 0 {
		d.Tags = c.Tags
	}
	if c.Mood != "" {
		mood, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		d.Mood = mood
	}
	switch {
	case c.Stdin:
		content, err := ctx.contentOrStdin("")
		if err != nil {
			return err
		}
		d.Content = content
	case c.Content != "":
		d.Content = c.Content
	}

	updated, err := ctx.Journal.Update(c.ID, d)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Updated entry: %s (ID: %d)\n", updated.Title, updated.ID)
	return nil
}

type DeleteCmd struct {
	ID  int64 `arg:"" help:"ID of the entry to delete."`
	Yes bool  `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}

	e, ok := ctx.Journal.Find(c.ID)
	if !ok {
		return fmt.Errorf("%w: %d", journal.ErrNotFound, c.ID)
	}

	if !c.Yes {
		yes, err := ctx.confirm(fmt.Sprintf("Delete %q?", e.Title))
		if err != nil {
			return err
		}
		if !yes {
			fmt.Fprintln(ctx.Out, "Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.Journal.Delete(c.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted entry: %s\n", e.Title)
	return nil
}

type ShowCmd struct {
	ID   int64 `arg:"" help:"ID of the entry to show."`
	Copy bool  `help:"Also copy the title and text to the clipboard."`
	JSON bool  `help:"Print the stored record as JSON."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	e, ok := ctx.Journal.Find(c.ID)
	if !ok {
		return fmt.Errorf("%w: %d", journal.ErrNotFound, c.ID)
	}

	if c.JSON {
		jsonBytes, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		fmt.Fprintln(ctx.Out, string(jsonBytes))
	} else {
		printEntry(ctx.Out, e)
	}

	if c.Copy {
		if err := copyToClipboard(e.Title + "\n\n" + e.Content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(ctx.Out, "✓ Copied to clipboard")
	}
	return nil
}

// contentOrStdin returns arg, or all of stdin when arg is blank
func (c *Context) contentOrStdin(arg string) (string, error) {
	if strings.TrimSpace(arg) != "" {
		return arg, nil
	}
	text, err := importer.ReadFrom(context.Background(), c.input())
	if err != nil {
		return "", fmt.Errorf("failed to read entry text: %w", err)
	}
	return text, nil
}
