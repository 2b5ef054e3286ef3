package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var errEmptyName = errors.New("habit name cannot be empty")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateAddForm:
			return m.updateForm(msg)
		case stateConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.state == stateAddForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	habitList := m.store.Habits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habitList)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(habitList) {
			if err := m.store.ToggleCompletion(habitList[m.cursor].ID, time.Now()); err != nil {
				m.errMsg = err.Error()
			}
		}

	case key.Matches(msg, m.keys.PrevMonth):
		m.month = m.month.AddDate(0, -1, 0)

	case key.Matches(msg, m.keys.NextMonth):
		m.month = m.month.AddDate(0, 1, 0)

	case key.Matches(msg, m.keys.Add):
		m.habitForm = &habitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.state = stateAddForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(habitList) {
			m.confirmID = habitList[m.cursor].ID
			m.confirmName = habitList[m.cursor].Name
			m.state = stateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = stateList
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if _, err := m.store.AddHabit(m.habitForm.Name, m.habitForm.Category, m.habitForm.Emoji); err != nil {
			m.errMsg = err.Error()
		}
		m.state = stateList
		m.form = nil
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = stateList
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.store.DeleteHabit(m.confirmID); err != nil {
			m.errMsg = err.Error()
		}
		if m.cursor > 0 && m.cursor >= len(m.store.Habits()) {
			m.cursor--
		}
		m.state = stateList
	case "n", "N", "esc":
		m.state = stateList
	}
	return m, nil
}
