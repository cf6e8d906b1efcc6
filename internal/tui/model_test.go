package tui

import (
	"errors"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
	"github.com/julianstephens/riji/internal/tui/components/entrylist"
	"github.com/julianstephens/riji/internal/tui/components/taglist"
)

type memPersister struct {
	entries []models.Entry
	saves   int
}

func (m *memPersister) Load() ([]models.Entry, error) {
	return m.entries, nil
}

func (m *memPersister) Save(entries []models.Entry) error {
	m.entries = append([]models.Entry(nil), entries...)
	m.saves++
	return nil
}

func setupModel(t *testing.T) (Model, *memPersister) {
	t.Helper()
	p := &memPersister{entries: []models.Entry{
		{ID: 100, Title: "2025年6月1日", Tags: []string{"杭州实习"}, Content: "今天开会", Mood: models.MoodCalm},
		{ID: 200, Title: "2025年6月3日", Tags: []string{"心情", "出去玩"}, Content: "和朋友散步", Mood: models.MoodHappy},
	}}
	now := time.Date(2025, 6, 20, 9, 30, 5, 0, time.Local)
	store := journal.New(p, journal.WithClock(func() time.Time { return now }))
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := NewModel(store)
	m.now = func() time.Time { return now }
	return m, p
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"ascii commas", "work, travel", []string{"work", "travel"}},
		{"full width", "工作，旅行", []string{"工作", "旅行"}},
		{"enumeration comma", "工作、旅行、", []string{"工作", "旅行"}},
		{"blank parts", " , ,心情", []string{"心情"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntryFormDraft(t *testing.T) {
	fm := newEntryFormModel(models.Entry{Title: "2025年6月1日", Category: "旧分类", Content: "内容"})
	if !reflect.DeepEqual(fm.Tags, []string{"旧分类"}) {
		t.Errorf("expected legacy category as the initial tag, got %v", fm.Tags)
	}
	if fm.Mood != models.DefaultMood {
		t.Errorf("expected default mood, got %q", fm.Mood)
	}

	fm.ExtraTags = "新标签，另一个"
	d := fm.Draft()
	want := []string{"旧分类", "新标签", "另一个"}
	if !reflect.DeepEqual(d.Tags, want) {
		t.Errorf("Draft tags = %v, want %v", d.Tags, want)
	}
	if d.Title != "2025年6月1日" || d.Content != "内容" {
		t.Errorf("unexpected draft: %+v", d)
	}
}

func TestTagOptions(t *testing.T) {
	got := tagOptions([]string{"自定义", "心情"}, []journal.TagCount{{Tag: "心情", Count: 3}, {Tag: "读书", Count: 1}})
	if got[0] != "自定义" || got[1] != "心情" {
		t.Errorf("expected current tags first, got %v", got)
	}
	if got[len(got)-1] != "读书" {
		t.Errorf("expected store tags last, got %v", got)
	}
	seen := map[string]bool{}
	for _, tag := range got {
		if seen[tag] {
			t.Errorf("duplicate option %q", tag)
		}
		seen[tag] = true
	}
}

func TestTabSwitching(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateTags {
		t.Fatalf("expected tags tab, got %v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateEntries {
		t.Fatalf("expected entries tab, got %v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateTags {
		t.Fatalf("expected shift+tab to wrap to tags, got %v", m.state)
	}
}

func TestReadAndBack(t *testing.T) {
	m, _ := setupModel(t)
	e, _ := m.store.Find(100)

	m, _ = update(t, m, entrylist.ReadEntryMsg{Entry: e})
	if m.state != StateReading {
		t.Fatalf("expected reading state, got %v", m.state)
	}
	if m.reader.Entry == nil || m.reader.Entry.ID != 100 {
		t.Fatalf("reader shows wrong entry: %+v", m.reader.Entry)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateEntries {
		t.Errorf("expected esc to return to entries, got %v", m.state)
	}
}

func TestTagFilter(t *testing.T) {
	m, _ := setupModel(t)
	m.state = StateTags

	m, _ = update(t, m, taglist.SelectTagMsg{Tag: "心情"})
	if m.state != StateEntries || m.tagFilter != "心情" {
		t.Fatalf("expected filtered entries view, got state %v filter %q", m.state, m.tagFilter)
	}
	if m.entryList.Len() != 1 {
		t.Errorf("expected 1 entry tagged 心情, got %d", m.entryList.Len())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.tagFilter != "" {
		t.Errorf("expected esc to clear the tag filter, got %q", m.tagFilter)
	}
	if m.entryList.Len() != 2 {
		t.Errorf("expected all entries after clearing, got %d", m.entryList.Len())
	}
}

func TestConfirmDelete(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		wantLen   int
		wantSaves int
	}{
		{"confirm", runeKey("y"), 1, 1},
		{"cancel", runeKey("n"), 2, 0},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, p := setupModel(t)

			m, _ = update(t, m, entrylist.DeleteEntryMsg{ID: 100})
			if m.state != StateConfirmDelete {
				t.Fatalf("expected confirm state, got %v", m.state)
			}
			if view := m.View(); view == "" {
				t.Error("expected confirmation view")
			}

			m, _ = update(t, m, tt.key)
			if m.state != StateEntries {
				t.Errorf("expected entries state, got %v", m.state)
			}
			if m.store.Len() != tt.wantLen {
				t.Errorf("expected %d entries, got %d", tt.wantLen, m.store.Len())
			}
			if p.saves != tt.wantSaves {
				t.Errorf("expected %d saves, got %d", tt.wantSaves, p.saves)
			}
		})
	}
}

func TestCopyEntry(t *testing.T) {
	m, _ := setupModel(t)
	var copied string
	m.copyFunc = func(s string) error {
		copied = s
		return nil
	}
	e, _ := m.store.Find(200)

	m, cmd := update(t, m, entrylist.CopyEntryMsg{Entry: e})
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	msg := cmd()
	if copied != "2025年6月3日\n\n和朋友散步" {
		t.Errorf("unexpected clipboard text %q", copied)
	}

	m, _ = update(t, m, msg)
	if m.status == "" || m.statusIsError {
		t.Errorf("expected success status, got %q (error=%v)", m.status, m.statusIsError)
	}
}

func TestCopyEntryFailure(t *testing.T) {
	m, _ := setupModel(t)
	m.copyFunc = func(string) error { return errors.New("no clipboard") }
	e, _ := m.store.Find(200)

	m, cmd := update(t, m, entrylist.CopyEntryMsg{Entry: e})
	m, _ = update(t, m, cmd())
	if !m.statusIsError {
		t.Errorf("expected error status, got %q", m.status)
	}
}

func TestFinishImport(t *testing.T) {
	tests := []struct {
		name      string
		msg       importParsedMsg
		wantLen   int
		wantError bool
	}{
		{
			name: "adds new entries",
			msg: importParsedMsg{entries: []models.Entry{
				{ID: 300, Title: "2025年6月5日", Tags: []string{"简单日常"}, Content: "新的一天", Mood: models.MoodHappy},
			}},
			wantLen: 3,
		},
		{
			name: "duplicates only",
			msg: importParsedMsg{entries: []models.Entry{
				{ID: 100, Title: "2025年6月1日", Tags: []string{"杭州实习"}, Content: "今天开会", Mood: models.MoodCalm},
			}},
			wantLen: 2,
		},
		{
			name:      "nothing parsed",
			msg:       importParsedMsg{},
			wantLen:   2,
			wantError: true,
		},
		{
			name:      "read failure",
			msg:       importParsedMsg{err: errors.New("boom")},
			wantLen:   2,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := setupModel(t)
			m, _ = update(t, m, tt.msg)
			if m.store.Len() != tt.wantLen {
				t.Errorf("expected %d entries, got %d", tt.wantLen, m.store.Len())
			}
			if m.statusIsError != tt.wantError {
				t.Errorf("statusIsError = %v, want %v (status %q)", m.statusIsError, tt.wantError, m.status)
			}
			if m.entryList.Len() != tt.wantLen {
				t.Errorf("list shows %d entries, want %d", m.entryList.Len(), tt.wantLen)
			}
		})
	}
}

func TestStatusClears(t *testing.T) {
	m, _ := setupModel(t)
	m.setStatus("first", false)
	stale := clearStatusMsg{seq: m.statusSeq}
	m.setStatus("second", false)

	m, _ = update(t, m, stale)
	if m.status != "second" {
		t.Errorf("stale clear removed the newer status, got %q", m.status)
	}
	m, _ = update(t, m, clearStatusMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Errorf("expected status cleared, got %q", m.status)
	}
}

func TestEntryFormOpenAndAbort(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = update(t, m, entrylist.AddEntryMsg{})
	if m.state != StateEditing {
		t.Fatalf("expected editing state, got %v", m.state)
	}
	if m.editingID != 0 {
		t.Errorf("expected new entry, got editing id %d", m.editingID)
	}
	if m.entryForm.Title != titledate.Title(m.now()) {
		t.Errorf("expected today's title, got %q", m.entryForm.Title)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateEntries {
		t.Errorf("expected esc to leave the form, got %v", m.state)
	}

	e, _ := m.store.Find(200)
	m, _ = update(t, m, entrylist.EditEntryMsg{Entry: e})
	if m.editingID != 200 || m.entryForm.Content != "和朋友散步" {
		t.Errorf("edit form not prefilled: id %d form %+v", m.editingID, m.entryForm)
	}
}

func TestValidationWarning(t *testing.T) {
	p := &memPersister{entries: []models.Entry{
		{ID: 1, Title: "没有日期", Tags: []string{"心情"}, Content: "内容", Mood: models.MoodHappy},
	}}
	store := journal.New(p)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := NewModel(store)
	if m.validationWarning == "" {
		t.Error("expected a validation warning for an undated title")
	}
}
