package importer

import (
	"fmt"

	"github.com/julianstephens/riji/internal/models"
)

// Outcome classifies an import for user feedback
type Outcome int

const (
	// OutcomeNoData means the source contained no entries at all
	OutcomeNoData Outcome = iota
	// OutcomeAllDuplicates means entries were found but every id already existed
	OutcomeAllDuplicates
	// OutcomeImported means at least one entry was added
	OutcomeImported
)

// Result reports what a merge did
type Result struct {
	Parsed int
	Added  int
}

// Outcome distinguishes an empty source from a source of duplicates
func (r Result) Outcome() Outcome {
	switch {
	case r.Parsed == 0:
		return OutcomeNoData
	case r.Added == 0:
		return OutcomeAllDuplicates
	default:
		return OutcomeImported
	}
}

// Message renders the result for the user
func (r Result) Message() string {
	switch r.Outcome() {
	case OutcomeNoData:
		return "No entries found to import"
	case OutcomeAllDuplicates:
		return fmt.Sprintf("All %d entries already exist, nothing imported", r.Parsed)
	default:
		return fmt.Sprintf("Imported %d of %d entries", r.Added, r.Parsed)
	}
}

// Merge appends the candidates whose id is not already taken to existing.
// The existing slice is not modified.
func Merge(existing, candidates []models.Entry) ([]models.Entry, Result) {
	seen := make(map[int64]struct{}, len(existing)+len(candidates))
	for _, e := range existing {
		seen[e.ID] = struct{}{}
	}

	merged := make([]models.Entry, len(existing), len(existing)+len(candidates))
	copy(merged, existing)

	result := Result{Parsed: len(candidates)}
	for _, c := range candidates {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		merged = append(merged, c)
		result.Added++
	}

	return merged, result
}
