package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"habitkeep/internal/cli"
	"habitkeep/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	store, user, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	model := tui.New(store, user)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
