package cli

import (
	"fmt"

	"habitkeep/internal/keyring"
)

type SettingsCmd struct {
	DarkMode         DarkModeCmd         `cmd:"" name:"dark-mode" help:"Show or set the dark-mode preference."`
	ConnectionString ConnectionStringCmd `cmd:"" name:"connection-string" help:"Manage the Postgres connection string in the OS keyring."`
}

type DarkModeCmd struct {
	Value string `arg:"" optional:"" enum:"on,off," help:"New value (on/off); omit to show the current setting."`
}

func (c *DarkModeCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	switch c.Value {
	case "":
		if store.DarkMode() {
			fmt.Println("Dark mode: on")
		} else {
			fmt.Println("Dark mode: off")
		}
		return nil
	case "on":
		if err := store.SetDarkMode(true); err != nil {
			return err
		}
		fmt.Println("Dark mode enabled.")
	case "off":
		if err := store.SetDarkMode(false); err != nil {
			return err
		}
		fmt.Println("Dark mode disabled.")
	}
	return nil
}

type ConnectionStringCmd struct {
	Set   ConnectionStringSetCmd   `cmd:"" help:"Store a connection string in the OS keyring."`
	Show  ConnectionStringShowCmd  `cmd:"" help:"Show whether a connection string is stored."`
	Clear ConnectionStringClearCmd `cmd:"" help:"Remove the stored connection string."`
}

type ConnectionStringSetCmd struct {
	Value string `arg:"" help:"PostgreSQL connection string."`
}

func (c *ConnectionStringSetCmd) Run(ctx *Context) error {
	if err := keyring.SetConnectionString(c.Value); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring. Use --config=keyring to select it.")
	return nil
}

type ConnectionStringShowCmd struct{}

func (c *ConnectionStringShowCmd) Run(ctx *Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	// Never print the stored value; it may embed credentials.
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}

type ConnectionStringClearCmd struct{}

func (c *ConnectionStringClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if err == keyring.ErrNotFound {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
