package journal

import (
	"sort"
	"time"

	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

// SortByTitleDate orders entries newest first by the date their title
// starts with. Entries with equal dates keep their relative order, and
// entries whose title has no valid date go last.
func SortByTitleDate(entries []models.Entry) {
	type keyed struct {
		entry models.Entry
		date  time.Time
		ok    bool
	}
	items := make([]keyed, len(entries))
	for i, e := range entries {
		d, ok := titledate.ParseOK(e.Title)
		items[i] = keyed{entry: e, date: d, ok: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.date.After(b.date)
	})

	for i, it := range items {
		entries[i] = it.entry
	}
}
