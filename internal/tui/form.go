package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/riji/internal/classifier"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/models"
)

type EntryFormModel struct {
	Title     string
	Tags      []string
	ExtraTags string
	Mood      models.Mood
	Content   string
}

type ImportFormModel struct {
	Path string
}

func newEntryFormModel(e models.Entry) *EntryFormModel {
	mood := e.Mood
	if mood == "" {
		mood = models.DefaultMood
	}
	return &EntryFormModel{
		Title:   e.Title,
		Tags:    append([]string(nil), e.EffectiveTags()...),
		Mood:    mood,
		Content: e.Content,
	}
}

// Draft merges the picked and typed tags, picked first
func (fm *EntryFormModel) Draft() journal.Draft {
	tags := append([]string(nil), fm.Tags...)
	tags = append(tags, splitTags(fm.ExtraTags)...)
	return journal.Draft{
		Title:   fm.Title,
		Tags:    tags,
		Content: fm.Content,
		Mood:    fm.Mood,
	}
}

// splitTags accepts ASCII and full-width commas as well as the enumeration comma
func splitTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	var tags []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// tagOptions lists the entry's own tags first so the picker keeps their
// order, then the built-in labels, then every other tag in the journal.
func tagOptions(current []string, existing []journal.TagCount) []string {
	var out []string
	seen := map[string]bool{}
	add := func(tag string) {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	for _, t := range current {
		add(t)
	}
	for _, t := range classifier.Labels() {
		add(t)
	}
	for _, c := range existing {
		add(c.Tag)
	}
	return out
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func NewEntryForm(fm *EntryFormModel, tags []string) *huh.Form {
	tagOpts := make([]huh.Option[string], 0, len(tags))
	for _, t := range tags {
		tagOpts = append(tagOpts, huh.NewOption(t, t))
	}
	moodOpts := make([]huh.Option[models.Mood], 0, len(models.Moods))
	for _, m := range models.Moods {
		moodOpts = append(moodOpts, huh.NewOption(fmt.Sprintf("%s %s", m, m.Name()), m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Start with a date such as 2025年6月14日 to keep entries in order").
				Value(&fm.Title).
				Validate(notBlank("title")),
			huh.NewMultiSelect[string]().
				Title("Tags").
				Description("The first tag is the primary category").
				Options(tagOpts...).
				Filterable(true).
				Value(&fm.Tags),
			huh.NewInput().
				Title("Other tags").
				Description("Comma separated").
				Value(&fm.ExtraTags),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(moodOpts...).
				Value(&fm.Mood),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Content").
				Lines(12).
				Value(&fm.Content).
				Validate(notBlank("content")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewImportForm(fm *ImportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Import from file").
				Description("A UTF-8 text file; every line starting with a date like 2025年6月14日 begins an entry").
				Value(&fm.Path).
				Validate(notBlank("path")),
		),
	).WithTheme(huh.ThemeDracula())
}
