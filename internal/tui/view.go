package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateEntries:
		content = docStyle.Render(m.entryList.View())
	case StateTags:
		content = docStyle.Render(m.tagList.View())
	case StateReading:
		content = docStyle.Render(m.reader.View())
	case StateEditing, StateImporting:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Entries", "Tags"} {
		active := m.state == SessionState(i) ||
			(i == int(StateEntries) && m.state >= tabCount)
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.tagFilter != "" {
		tabs = append(tabs, filterStyle.Render("#"+m.tagFilter))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	heading := "New entry"
	switch {
	case m.state == StateImporting:
		heading = "Import"
	case m.editingID != 0:
		heading = "Edit entry"
	}
	parts := []string{activeTabStyle.Render(heading), ""}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError), "")
	}
	parts = append(parts, m.form.View())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewStatus() string {
	switch {
	case m.status != "" && m.statusIsError:
		return dangerStyle.Render(m.status)
	case m.status != "":
		return successStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(m.validationWarning)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	title := "this entry"
	if e, ok := m.store.Find(m.entryToDeleteID); ok {
		title = fmt.Sprintf("%q", e.Title)
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
