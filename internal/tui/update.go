package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/riji/internal/importer"
	"github.com/julianstephens/riji/internal/journal"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/internal/titledate"
	"github.com/julianstephens/riji/internal/tui/components/entrylist"
	"github.com/julianstephens/riji/internal/tui/components/taglist"
)

// importParsedMsg carries the entries read from an import file
type importParsedMsg struct {
	path    string
	entries []models.Entry
	err     error
}

type copiedMsg struct {
	title string
	err   error
}

// chromeHeight covers the tab bar, status line, help and padding
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := msg.Width-4, msg.Height-chromeHeight
		m.entryList.SetSize(w, h)
		m.tagList.SetSize(w, h)
		m.reader.SetSize(w, h)
		if m.form != nil {
			m.form = m.form.WithWidth(w)
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusIsError = false
		}
		return m, nil

	case importParsedMsg:
		return m.finishImport(msg)

	case copiedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err), true)
		}
		return m, m.setStatus(fmt.Sprintf("Copied %q to the clipboard", msg.title), false)
	}

	switch m.state {
	case StateEditing:
		return m.updateEntryForm(msg)
	case StateImporting:
		return m.updateImportForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case entrylist.AddEntryMsg:
		return m.openEntryForm(models.Entry{Title: titledate.Title(m.now())}, 0)
	case entrylist.EditEntryMsg:
		return m.openEntryForm(msg.Entry, msg.Entry.ID)
	case entrylist.ReadEntryMsg:
		m.reader.SetEntry(msg.Entry)
		m.state = StateReading
		return m, nil
	case entrylist.DeleteEntryMsg:
		m.entryToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	case entrylist.CopyEntryMsg:
		return m, m.copyEntry(msg.Entry)
	case entrylist.ImportMsg:
		m.importForm = &ImportFormModel{}
		m.form = NewImportForm(m.importForm)
		m.formError = ""
		m.state = StateImporting
		return m, m.form.Init()
	case taglist.SelectTagMsg:
		m.tagFilter = msg.Tag
		m.state = StateEntries
		return m, m.refresh()

	case tea.KeyMsg:
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Tab):
				if m.state < tabCount {
					m.state = (m.state + 1) % tabCount
				}
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				if m.state < tabCount {
					m.state = (m.state - 1 + tabCount) % tabCount
				}
				return m, nil
			case key.Matches(msg, m.keys.Back):
				switch {
				case m.state == StateReading:
					m.state = StateEntries
					return m, nil
				case m.state == StateEntries && m.tagFilter != "":
					m.tagFilter = ""
					return m, m.refresh()
				}
			}
		}

		if m.state == StateReading && m.reader.Entry != nil {
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m.openEntryForm(*m.reader.Entry, m.reader.Entry.ID)
			case key.Matches(msg, m.keys.Copy):
				return m, m.copyEntry(*m.reader.Entry)
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateEntries:
		m.entryList, cmd = m.entryList.Update(msg)
	case StateTags:
		m.tagList, cmd = m.tagList.Update(msg)
	case StateReading:
		m.reader, cmd = m.reader.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateEntries:
		return m.entryList.Filtering()
	case StateTags:
		return m.tagList.Filtering()
	}
	return false
}

func (m Model) openEntryForm(e models.Entry, id int64) (tea.Model, tea.Cmd) {
	m.entryForm = newEntryFormModel(e)
	m.editingID = id
	m.formError = ""
	m.form = m.newEntryForm()
	m.previousState = m.returnState()
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) newEntryForm() *huh.Form {
	f := NewEntryForm(m.entryForm, tagOptions(m.entryForm.Tags, m.store.Tags()))
	if m.width > 0 {
		f = f.WithWidth(m.width - 4)
	}
	return f
}

// returnState is where a form or dialog goes back to
func (m Model) returnState() SessionState {
	if m.state == StateReading {
		return StateReading
	}
	return StateEntries
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.formError = ""
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var (
			saved models.Entry
			err   error
		)
		draft := m.entryForm.Draft()
		if m.editingID == 0 {
			saved, err = m.store.Create(draft)
		} else {
			saved, err = m.store.Update(m.editingID, draft)
		}

		if errors.Is(err, journal.ErrValidation) {
			// Keep what was typed and let the user fix it
			m.formError = err.Error()
			m.form = m.newEntryForm()
			return m, m.form.Init()
		}

		m.formError = ""
		if err != nil && !errors.Is(err, journal.ErrPersist) {
			m.state = StateEntries
			cmds = append(cmds, m.refresh(), m.setStatus(err.Error(), true))
			return m, tea.Batch(cmds...)
		}

		cmds = append(cmds, m.refresh())
		if m.previousState == StateReading {
			m.reader.SetEntry(saved)
		}
		m.state = m.previousState
		if err != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Saved in memory only: %v", err), true))
		} else {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Saved %q", saved.Title), false))
		}
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateImportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateEntries
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateEntries
		cmds = append(cmds, readImport(strings.TrimSpace(m.importForm.Path), m.now()), m.setStatus("Importing...", false))
	case huh.StateAborted:
		m.state = StateEntries
	}
	return m, tea.Batch(cmds...)
}

// readImport reads and parses the file off the update loop
func readImport(path string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		text, err := importer.ReadSource(context.Background(), path)
		if err != nil {
			return importParsedMsg{path: path, err: err}
		}
		return importParsedMsg{path: path, entries: importer.Parse(text, now)}
	}
}

func (m Model) finishImport(msg importParsedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setStatus(fmt.Sprintf("Import failed: %v", msg.err), true)
	}

	res, err := m.store.Import(msg.entries)
	refresh := m.refresh()
	if err != nil {
		return m, tea.Batch(refresh, m.setStatus(fmt.Sprintf("%s, but saving failed: %v", res.Message(), err), true))
	}
	isError := res.Outcome() == importer.OutcomeNoData
	return m, tea.Batch(refresh, m.setStatus(res.Message(), isError))
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		id := m.entryToDeleteID
		m.entryToDeleteID = 0
		m.state = StateEntries
		removed, err := m.store.Delete(id)
		refresh := m.refresh()
		switch {
		case err != nil:
			return m, tea.Batch(refresh, m.setStatus(fmt.Sprintf("Delete failed to save: %v", err), true))
		case !removed:
			return m, tea.Batch(refresh, m.setStatus("Entry was already gone", true))
		}
		return m, tea.Batch(refresh, m.setStatus("Entry deleted", false))
	case key.Matches(keyMsg, m.keys.Cancel):
		m.entryToDeleteID = 0
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) copyEntry(e models.Entry) tea.Cmd {
	copyFunc := m.copyFunc
	return func() tea.Msg {
		text := e.Title + "\n\n" + e.Content
		return copiedMsg{title: e.Title, err: copyFunc(text)}
	}
}
