package models

import (
	"fmt"
	"strings"
	"time"
)

// Mood is one of a fixed set of mood markers attached to an entry
type Mood string

const (
	MoodHappy   Mood = "😊"
	MoodSad     Mood = "😢"
	MoodAngry   Mood = "😠"
	MoodExcited Mood = "🤩"
	MoodCalm    Mood = "😌"

	// DefaultMood is used whenever no mood is given or inferred
	DefaultMood = MoodHappy
)

// Moods lists every mood marker in display order
var Moods = []Mood{MoodHappy, MoodSad, MoodAngry, MoodExcited, MoodCalm}

var moodNames = map[string]Mood{
	"happy":   MoodHappy,
	"sad":     MoodSad,
	"angry":   MoodAngry,
	"excited": MoodExcited,
	"calm":    MoodCalm,
}

// Name returns the English name of a mood, or "" for an unknown marker
func (m Mood) Name() string {
	for name, mood := range moodNames {
		if mood == m {
			return name
		}
	}
	return ""
}

// Valid reports whether m is one of the known markers
func (m Mood) Valid() bool {
	for _, mood := range Moods {
		if mood == m {
			return true
		}
	}
	return false
}

// ParseMood accepts either a marker or its English name.
// An empty string yields DefaultMood.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMood, nil
	}
	if m := Mood(s); m.Valid() {
		return m, nil
	}
	if m, ok := moodNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("invalid mood: %s", s)
}

// Entry is a single journal record. This is the persisted shape.
type Entry struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"` // first tag, for single-category readers
	Content  string   `json:"content"`
	Mood     Mood     `json:"mood"`
	Date     string   `json:"date"` // localized timestamp, see FormatTimestamp
}

// PrimaryTag returns the first tag, falling back to Category for records
// written before tags existed.
func (e Entry) PrimaryTag() string {
	if len(e.Tags) > 0 {
		return e.Tags[0]
	}
	return e.Category
}

// HasTag reports whether the entry carries tag
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.EffectiveTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// EffectiveTags returns Tags, or a single-element slice of Category when
// the record predates tags.
func (e Entry) EffectiveTags() []string {
	if len(e.Tags) > 0 {
		return e.Tags
	}
	if e.Category != "" {
		return []string{e.Category}
	}
	return nil
}

// Normalize fills tags from a legacy category and the category from the
// first tag. Empty moods become DefaultMood.
func (e *Entry) Normalize() {
	if len(e.Tags) == 0 && e.Category != "" {
		e.Tags = []string{e.Category}
	}
	if len(e.Tags) > 0 {
		e.Category = e.Tags[0]
	}
	if e.Mood == "" {
		e.Mood = DefaultMood
	}
}

// Clone returns a copy that shares no slices with e
func (e Entry) Clone() Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

// FormatTimestamp renders t the way a zh-CN locale prints a date and time,
// e.g. "2025/6/14 08:05:09".
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %02d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// Preview returns the first n runes of the content on one line, with "..."
// appended when the content is longer.
func (e Entry) Preview(n int) string {
	flat := strings.Join(strings.Fields(e.Content), " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return string(runes[:n]) + "..."
}
