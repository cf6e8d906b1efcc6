// Package journal owns the in-memory entry collection and every rule about
// changing it. Nothing else holds a writable reference to the entries;
// callers get copies.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/riji/internal/importer"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
)

var (
	// ErrValidation is returned when a draft is missing a required field
	ErrValidation = errors.New("invalid entry")
	// ErrNotFound is returned for ids that are not in the store
	ErrNotFound = errors.New("entry not found")
	// ErrPersist wraps load and save failures of the backing store
	ErrPersist = errors.New("persistence failed")
)

// Persister is the load/save pair the store writes through
type Persister interface {
	Load() ([]models.Entry, error)
	Save([]models.Entry) error
}

// Draft holds the user-editable fields of an entry
type Draft struct {
	Title   string
	Tags    []string
	Content string
	Mood    models.Mood
}

// TagCount is a tag and the number of entries carrying it
type TagCount struct {
	Tag   string
	Count int
}

// Store is the ordered entry collection. It is not safe for concurrent use.
type Store struct {
	entries   []models.Entry
	persister Persister
	now       func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store backed by p. Call Load to read existing entries.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory entries with the persisted ones. On failure
// the store is left empty and the error is returned so the caller can tell
// the user.
func (s *Store) Load() error {
	entries, err := s.persister.Load()
	if err != nil {
		s.entries = nil
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	seen := make(map[int64]struct{}, len(entries))
	s.entries = make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			logger.Warn("Dropping entry with duplicate id", "id", e.ID, "title", e.Title)
			continue
		}
		seen[e.ID] = struct{}{}
		e.Normalize()
		s.entries = append(s.entries, e)
	}
	logger.Debug("Loaded journal", "entries", len(s.entries))
	return nil
}

// Now reads the store's clock
func (s *Store) Now() time.Time {
	return s.now()
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in stored order
func (s *Store) Entries() []models.Entry {
	return cloneAll(s.entries)
}

// Create validates d, appends a new entry, re-sorts and persists.
// A save failure is returned wrapped in ErrPersist; the entry stays in memory.
func (s *Store) Create(d Draft) (models.Entry, error) {
	d, err := validate(d)
	if err != nil {
		return models.Entry{}, err
	}

	now := s.now()
	e := models.Entry{
		ID:       s.nextID(now),
		Title:    d.Title,
		Tags:     d.Tags,
		Category: d.Tags[0],
		Content:  d.Content,
		Mood:     d.Mood,
		Date:     models.FormatTimestamp(now),
	}

	s.entries = append(s.entries, e)
	SortByTitleDate(s.entries)
	logger.Info("Created entry", "id", e.ID, "title", e.Title)

	return e.Clone(), s.save()
}

// Update replaces the entry with the given id, keeping the id.
func (s *Store) Update(id int64, d Draft) (models.Entry, error) {
	d, err := validate(d)
	if err != nil {
		return models.Entry{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	e := models.Entry{
		ID:       id,
		Title:    d.Title,
		Tags:     d.Tags,
		Category: d.Tags[0],
		Content:  d.Content,
		Mood:     d.Mood,
		Date:     models.FormatTimestamp(s.now()),
	}
	s.entries[idx] = e
	SortByTitleDate(s.entries)
	logger.Info("Updated entry", "id", id)

	return e.Clone(), s.save()
}

// Delete removes the entry with id. It reports whether an entry was
// removed; the store is persisted either way.
func (s *Store) Delete(id int64) (bool, error) {
	removed := false
	if idx := s.indexOf(id); idx >= 0 {
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		removed = true
		logger.Info("Deleted entry", "id", id)
	}
	return removed, s.save()
}

// Find returns the entry with id
func (s *Store) Find(id int64) (models.Entry, bool) {
	if idx := s.indexOf(id); idx >= 0 {
		return s.entries[idx].Clone(), true
	}
	return models.Entry{}, false
}

// FilterAndSort returns the entries whose title or content contains search
// (case-insensitively) and that carry tag, newest title date first. Empty
// search or tag matches everything. The search term is used as given, so a
// blank term only matches text containing it. Stored order is not changed.
func (s *Store) FilterAndSort(search, tag string) []models.Entry {
	term := strings.ToLower(search)

	var out []models.Entry
	for _, e := range s.entries {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Content), term) {
			continue
		}
		if tag != "" && !e.HasTag(tag) {
			continue
		}
		out = append(out, e.Clone())
	}

	SortByTitleDate(out)
	return out
}

// Import merges parsed entries into the store, skipping ids that already
// exist, and persists when anything was added.
func (s *Store) Import(candidates []models.Entry) (importer.Result, error) {
	merged, res := importer.Merge(s.entries, candidates)
	if res.Added == 0 {
		return res, nil
	}
	s.entries = merged
	logger.Info("Imported entries", "parsed", res.Parsed, "added", res.Added)
	return res, s.save()
}

// Tags lists each distinct tag with its entry count, most used first and
// then by first appearance.
func (s *Store) Tags() []TagCount {
	var counts []TagCount
	index := make(map[string]int)
	for _, e := range s.entries {
		for _, tag := range e.EffectiveTags() {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, TagCount{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// SeedWelcome adds an introductory entry dated today when the store is
// empty. It reports whether an entry was added.
func (s *Store) SeedWelcome() (bool, error) {
	if len(s.entries) > 0 {
		return false, nil
	}
	// Only persistence can fail here; the entry is in memory regardless
	_, err := s.Create(Draft{
		Title:   titledate.Title(s.now()),
		Tags:    []string{"心情"},
		Content: welcomeText,
		Mood:    models.MoodHappy,
	})
	return true, err
}

const welcomeText = `今天开始使用这个新的日记本，希望能记录下生活中的美好时刻。

这个日记本支持：
• 创建、编辑、删除日记
• 按标签和关键词搜索
• 记录心情状态
• 从文本文件导入日记
• 按日期标题自动排序

开始写下你的第一篇日记吧！`

// Flush writes the loaded entries back unchanged, which persists whatever
// Load repaired.
func (s *Store) Flush() error {
	return s.save()
}

func (s *Store) save() error {
	if err := s.persister.Save(s.entries); err != nil {
		logger.Error("Failed to save journal", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// nextID uses the clock in milliseconds unless an existing id is already
// at or beyond it, so two entries created in the same tick still differ.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range s.entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

func validate(d Draft) (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)

	var tags []string
	for _, tag := range d.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || containsString(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	d.Tags = tags

	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if len(d.Tags) == 0 {
		missing = append(missing, "at least one tag")
	}
	if d.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return d, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	if d.Mood == "" {
		d.Mood = models.DefaultMood
	}
	if !d.Mood.Valid() {
		return d, fmt.Errorf("%w: unknown mood %q", ErrValidation, d.Mood)
	}
	return d, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneAll(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
