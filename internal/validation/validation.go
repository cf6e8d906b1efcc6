// Package validation checks persisted journal data for problems the store
// would silently repair or hide on load.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictMissingField     ConflictType = "missing_field"
	ConflictInvalidMood      ConflictType = "invalid_mood"
	ConflictCategoryMismatch ConflictType = "category_mismatch"
	ConflictUndatedTitle     ConflictType = "undated_title"
	ConflictDuplicateContent ConflictType = "duplicate_content"
)

// Severity separates data the store repairs or rejects from style issues
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Conflict represents a detected problem in the journal
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	EntryIDs    []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is an error rather than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of conflicts of type t
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		level := "warning"
		if c.Severity == SeverityError {
			level = "error"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", level, c.Description)
	}
	return b.String()
}

// Validator validates journal entries
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntries checks entries exactly as persisted, before any load-time
// normalization.
func (v *Validator) ValidateEntries(entries []models.Entry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[int64]int)
	var dupIDs []int64
	for _, e := range entries {
		byID[e.ID]++
		if byID[e.ID] == 2 {
			dupIDs = append(dupIDs, e.ID)
		}
	}
	for _, id := range dupIDs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Severity:    SeverityError,
			Description: fmt.Sprintf("Id %d is used by %d entries; only the first is loaded", id, byID[id]),
			EntryIDs:    []int64{id},
		})
	}

	for _, e := range entries {
		var missing []string
		if strings.TrimSpace(e.Title) == "" {
			missing = append(missing, "title")
		}
		if strings.TrimSpace(e.Content) == "" {
			missing = append(missing, "content")
		}
		if len(e.EffectiveTags()) == 0 {
			missing = append(missing, "tags")
		}
		if len(missing) > 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingField,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Entry %d is missing %s", e.ID, strings.Join(missing, ", ")),
				EntryIDs:    []int64{e.ID},
			})
		}

		if e.Mood != "" && !e.Mood.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMood,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Entry %d has unknown mood %q", e.ID, e.Mood),
				EntryIDs:    []int64{e.ID},
			})
		}

		if len(e.Tags) > 0 && e.Category != "" && e.Category != e.Tags[0] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCategoryMismatch,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Entry %d has category %q but first tag %q", e.ID, e.Category, e.Tags[0]),
				EntryIDs:    []int64{e.ID},
			})
		}

		if _, ok := titledate.ParseOK(e.Title); !ok && strings.TrimSpace(e.Title) != "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUndatedTitle,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Entry %d title %q has no valid date and sorts last", e.ID, e.Title),
				EntryIDs:    []int64{e.ID},
			})
		}
	}

	result.Conflicts = append(result.Conflicts, duplicateContent(entries)...)
	return result
}

// duplicateContent finds distinct ids carrying the same title and content,
// which is what importing the same file twice on different runs produces.
func duplicateContent(entries []models.Entry) []Conflict {
	groups := make(map[string][]int64)
	var order []string
	for _, e := range entries {
		key := strings.TrimSpace(e.Title) + "\x00" + strings.TrimSpace(e.Content)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		if !containsID(groups[key], e.ID) {
			groups[key] = append(groups[key], e.ID)
		}
	}

	var conflicts []Conflict
	for _, key := range order {
		ids := groups[key]
		if len(ids) < 2 {
			continue
		}
		sorted := append([]int64(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		title, _, _ := strings.Cut(key, "\x00")
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateContent,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("Entries %v share title %q and content", sorted, title),
			EntryIDs:    sorted,
		})
	}
	return conflicts
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
