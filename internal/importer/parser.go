// Package importer turns plain-text diaries into entries and merges them
// into an existing journal.
package importer

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/julianstephens/riji/internal/classifier"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

// titleLine captures the date plus anything up to the first full-width
// comma or full stop, which is where a weekday or short heading ends.
var titleLine = regexp.MustCompile(`^(\d{4}年\d{1,2}月\d{1,2}日[^，。]*)`)

// Parse splits text into entries. A line starting with a date opens a new
// entry; following non-blank lines form its content. Entries without
// content are dropped. Ids are now in milliseconds plus the line index of
// the date line, which keeps them unique within one call.
func Parse(text string, now time.Time) []models.Entry {
	var (
		entries []models.Entry
		current *models.Entry
		body    []string
	)

	finish := func() {
		if current == nil || len(body) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if content == "" {
			return
		}
		current.Content = content
		current.Tags = classifier.Tags(content)
		current.Category = current.Tags[0]
		current.Mood = classifier.Mood(content)
		entries = append(entries, *current)
	}

	base := now.UnixMilli()
	for i, raw := range strings.Split(text, "\n") {
		line := trimLine(raw)

		year, month, day, ok := titledate.Match(line)
		if ok {
			finish()

			title := titledate.Format(year, month, day)
			if m := titleLine.FindStringSubmatch(line); m != nil {
				title = m[1]
			}

			current = &models.Entry{
				ID:    base + int64(i),
				Title: title,
				Mood:  models.DefaultMood,
				Date:  models.FormatTimestamp(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)),
			}
			body = body[:0]
			continue
		}

		if current != nil && line != "" {
			body = append(body, line)
		}
	}
	finish()

	return entries
}

// trimLine strips surrounding whitespace, including full-width spaces and
// byte order marks that editors leave at the start of a file.
func trimLine(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
