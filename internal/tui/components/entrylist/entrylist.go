package entrylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/riji/internal/constants"
	"github.com/julianstephens/riji/internal/models"
)

type AddEntryMsg struct{}

type ReadEntryMsg struct {
	Entry models.Entry
}

type EditEntryMsg struct {
	Entry models.Entry
}

type DeleteEntryMsg struct {
	ID int64
}

type CopyEntryMsg struct {
	Entry models.Entry
}

type ImportMsg struct{}

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s", i.Entry.Mood, i.Entry.Title)
}

func (i Item) Description() string {
	tags := strings.Join(i.Entry.EffectiveTags(), " · ")
	return fmt.Sprintf("[%s] %s", tags, i.Entry.Preview(constants.PreviewLength))
}

// FilterValue lets the list's fuzzy filter match tags and content too
func (i Item) FilterValue() string {
	return i.Entry.Title + " " + strings.Join(i.Entry.EffectiveTags(), " ") + " " + i.Entry.Content
}

type KeyMap struct {
	Add    key.Binding
	Read   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Import key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new"),
		),
		Read: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	tag  string
}

func New(entries []models.Entry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Read, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Read, keys.Edit, keys.Delete, keys.Copy, keys.Import}
	}

	return Model{list: l, keys: keys}
}

func toItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

// SetEntries replaces the shown entries. tag is the active tag filter, ""
// for none, and only affects the empty-state text.
func (m *Model) SetEntries(entries []models.Entry, tag string) tea.Cmd {
	m.tag = tag
	return m.list.SetItems(toItems(entries))
}

// Len returns the number of entries shown
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter, during which
// single-letter keys belong to the filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Import):
			return m, func() tea.Msg { return ImportMsg{} }
		case key.Matches(msg, m.keys.Read):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ReadEntryMsg{Entry: i.Entry} }
			}
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditEntryMsg{Entry: i.Entry} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
			}
		case key.Matches(msg, m.keys.Copy):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CopyEntryMsg{Entry: i.Entry} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		if m.tag != "" {
			return fmt.Sprintf("\n  No entries tagged %q.\n  Press 'esc' to show all.", m.tag)
		}
		return "\n  No entries yet.\n  Press 'a' to write one or 'i' to import a text file."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
