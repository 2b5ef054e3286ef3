package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"habitkeep/internal/validation"
)

type RegisterCmd struct {
	Name     string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Email address (account identity)."`
	Password string `help:"Password (prompted interactively when omitted)."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		var confirm string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
				huh.NewInput().
					Title("Confirm password").
					EchoMode(huh.EchoModePassword).
					Value(&confirm),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if err := validation.PasswordsMatch(password, confirm); err != nil {
			return err
		}
	}

	user, err := ctx.Users.Register(c.Name, c.Email, password)
	if err != nil {
		return err
	}

	// A fresh signup is immediately logged in.
	if err := ctx.Session.Activate(user); err != nil {
		return err
	}

	fmt.Printf("Welcome, %s! You are now logged in as %s.\n", user.Name, user.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password (prompted interactively when omitted)."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password := c.Password
	if password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	user, err := ctx.Session.Login(c.Email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome back, %s!\n", user.Name)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user, err := ctx.Session.Restore()
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
