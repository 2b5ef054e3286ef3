package cli

import (
	"fmt"
	"os"
	"time"

	"habitkeep/internal/export"
)

type ExportCmd struct {
	Format string `arg:"" enum:"csv,json" help:"Export format: csv or json."`
	Output string `help:"Output file (default: habits-export.<format>)." default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = "habits-export." + c.Format
	}

	var data []byte
	switch c.Format {
	case "csv":
		data = []byte(export.CSV(store.Habits(), store.Completions()))
	case "json":
		data, err = export.JSON(store.Habits(), store.Completions(), time.Now())
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d habits to %s\n", len(store.Habits()), output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON export file to import."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	snap, err := export.ParseJSON(data)
	if err != nil {
		return err
	}

	// Import replaces the current state wholesale; it is the inverse of
	// the JSON export, not a merge.
	if err := store.Replace(snap.Habits, snap.Completions); err != nil {
		return err
	}

	fmt.Printf("Imported %d habits from %s\n", len(snap.Habits), c.File)
	return nil
}
