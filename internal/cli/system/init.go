package system

import (
	"fmt"
	"os"

	"habitkeep/internal/cli"
	"habitkeep/internal/kvstore"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.KV.ConfigPath()
		if kvstore.IsPostgres(path) {
			return fmt.Errorf("--force is only supported for file-backed stores")
		}
		if _, err := os.Stat(path); err == nil {
			// Close first so the file isn't held open while deleted.
			if err := ctx.KV.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.KV.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitkeep storage at: %s\n", ctx.KV.ConfigPath())
	return nil
}
