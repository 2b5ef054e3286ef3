package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"habitkeep/internal/auth"
	"habitkeep/internal/cli"
	"habitkeep/internal/errors"
	"habitkeep/internal/cli/system"
	"habitkeep/internal/keyring"
	"habitkeep/internal/kvstore"
	"habitkeep/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store location: a .db (SQLite) or .json file path, a postgres:// connection string (no embedded credentials), or 'keyring' to read the connection string from the OS keyring." default:"~/.config/habitkeep/habitkeep.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitkeep storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Register cli.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Login    cli.LoginCmd    `cmd:"" help:"Log in."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out and clear the stored session."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the active user."`

	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and completions."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show monthly statistics."`
	Export   cli.ExportCmd   `cmd:"" help:"Export habits to CSV or JSON."`
	Import   cli.ImportCmd   `cmd:"" help:"Import a JSON export."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitkeep"),
		kong.Description("Local-first habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	store, err := openStore(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(store),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	users := auth.NewDirectory(store)
	appCtx := &cli.Context{
		KV:      store,
		Users:   users,
		Session: auth.NewSession(store, users),
	}

	// Every command except init expects an initialized store.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func openStore(config string) (kvstore.Provider, error) {
	if config == "keyring" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("no connection string in keyring; store one with 'habitkeep settings connection-string set': %w", err)
		}
		config = connStr
	}

	if kvstore.IsPostgres(config) {
		if kvstore.HasEmbeddedCredentials(config) {
			return nil, kvstore.ErrEmbeddedCredentials
		}
		return kvstore.NewPostgresStore(config), nil
	}

	if strings.HasSuffix(config, ".json") {
		return kvstore.NewJSONStore(config), nil
	}
	return kvstore.NewSQLiteStore(config), nil
}

// logDir picks a directory for the rotating log file: next to the store
// for file backends, the user config dir otherwise.
func logDir(store kvstore.Provider) string {
	path := store.ConfigPath()
	if !kvstore.IsPostgres(path) {
		return filepath.Dir(path)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "habitkeep")
}
