package reader

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/riji/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows one entry in a scrollable viewport
type Model struct {
	viewport viewport.Model
	Entry    *models.Entry
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Entry == nil {
		return "No entry selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEntry(e models.Entry) {
	m.Entry = &e
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Entry == nil {
		m.viewport.SetContent("")
		return
	}

	var tags []string
	for _, t := range m.Entry.EffectiveTags() {
		tags = append(tags, tagStyle.Render(t))
	}

	body := m.Entry.Content
	if m.width > 0 {
		body = lipgloss.NewStyle().Width(m.width).Render(body)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(string(m.Entry.Mood) + " " + m.Entry.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tags...))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(m.Entry.Date))
	b.WriteString("\n\n")
	b.WriteString(body)
	m.viewport.SetContent(b.String())
}
