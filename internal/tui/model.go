package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitkeep/internal/habits"
	"habitkeep/internal/models"
)

type sessionState int

const (
	stateList sessionState = iota
	stateAddForm
	stateConfirmDelete
)

type habitFormModel struct {
	Name     string
	Category string
	Emoji    string
}

// Model is the dashboard: the habit list with today's status, the month
// cursor, and derived statistics for the displayed month.
type Model struct {
	store *habits.Store
	user  models.User

	state  sessionState
	cursor int
	// month is the displayed month (first day). Transient; every launch
	// starts at the current real-world month.
	month time.Time

	form      *huh.Form
	habitForm *habitFormModel

	confirmID   string
	confirmName string

	keys     KeyMap
	help     help.Model
	errMsg   string
	width    int
	height   int
	quitting bool
}

func New(store *habits.Store, user models.User) Model {
	now := time.Now()
	return Model{
		store: store,
		user:  user,
		month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func newHabitForm(fm *habitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errEmptyName
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Placeholder("other").
				Value(&fm.Category),
			huh.NewInput().
				Title("Emoji").
				Placeholder("🎯").
				Value(&fm.Emoji),
		),
	).WithTheme(huh.ThemeDracula())
}
