package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/tui/components/entrylist"
	"github.com/julianstephens/riji/internal/tui/components/reader"
	"github.com/julianstephens/riji/internal/tui/components/taglist"
	"github.com/julianstephens/riji/internal/validation"
)

type SessionState int

const (
	StateEntries SessionState = iota
	StateTags
	StateReading
	StateEditing
	StateImporting
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab
const tabCount = 2

const statusTimeout = 3 * time.Second

type Model struct {
	store           *journal.Store
	state           SessionState
	previousState   SessionState
	keys            KeyMap
	help            help.Model
	entryList       entrylist.Model
	tagList         taglist.Model
	reader          reader.Model
	form            *huh.Form
	entryForm       *EntryFormModel
	importForm      *ImportFormModel
	formError       string
	editingID       int64 // 0 while writing a new entry
	entryToDeleteID int64
	tagFilter       string
	status          string
	statusIsError   bool
	statusSeq       int
	quitting        bool
	width           int
	height          int

	validationWarning string

	copyFunc func(string) error
	now      func() time.Time
}

func NewModel(store *journal.Store) Model {
	m := Model{
		store:     store,
		state:     StateEntries,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		entryList: entrylist.New(nil, 0, 0),
		tagList:   taglist.New(nil, 0, 0),
		reader:    reader.New(0, 0),
		copyFunc:  clipboard.WriteAll,
		now:       time.Now,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateEntries:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
		if m.tagFilter != "" {
			keys = append(keys, m.keys.Back)
		}
	case StateReading:
		keys = []key.Binding{m.keys.Back, m.keys.Edit, m.keys.Copy, m.keys.Quit}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateEntries:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Copy, m.keys.Import}
	case StateReading:
		actions = []key.Binding{m.keys.Edit, m.keys.Copy}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads both lists from the store and re-runs validation
func (m *Model) refresh() tea.Cmd {
	entries := m.store.FilterAndSort("", m.tagFilter)
	cmd := m.entryList.SetEntries(entries, m.tagFilter)
	tagCmd := m.tagList.SetTags(m.store.Tags())
	m.updateValidationStatus()
	return tea.Batch(cmd, tagCmd)
}

// updateValidationStatus checks the loaded entries and updates the warning
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateEntries(m.store.Entries())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'riji validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

type clearStatusMsg struct {
	seq int
}

// setStatus shows msg in the status line until the next status or timeout
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusSeq++
	m.status = msg
	m.statusIsError = isError
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
