package taglist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/riji/internal/journal"
)

// SelectTagMsg asks the main model to filter entries by Tag
type SelectTagMsg struct {
	Tag string
}

type Item struct {
	journal.TagCount
}

func (i Item) Title() string       { return i.Tag }
func (i Item) Description() string { return fmt.Sprintf("%d entries", i.Count) }
func (i Item) FilterValue() string { return i.Tag }

type Model struct {
	list   list.Model
	choose key.Binding
}

func New(counts []journal.TagCount, width, height int) Model {
	l := list.New(toItems(counts), list.NewDefaultDelegate(), width, height)
	l.Title = "Tags"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{
		list: l,
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show entries"),
		),
	}
}

func toItems(counts []journal.TagCount) []list.Item {
	items := make([]list.Item, len(counts))
	for i, c := range counts {
		items[i] = Item{TagCount: c}
	}
	return items
}

func (m *Model) SetTags(counts []journal.TagCount) tea.Cmd {
	return m.list.SetItems(toItems(counts))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() && key.Matches(msg, m.choose) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg { return SelectTagMsg{Tag: i.Tag} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No tags yet."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
