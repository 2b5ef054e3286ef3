package cli

import (
	"fmt"
	"time"

	"habitkeep/internal/stats"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit status."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Category string `help:"Habit category." default:"other"`
	Emoji    string `help:"Habit emoji." default:"🎯"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	habit, err := store.AddHabit(c.Name, c.Category, c.Emoji)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s %s\n", habit.Emoji, habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	habitList := store.Habits()
	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := time.Now()
	engine := stats.NewEngine(habitList, store.Completions())
	for _, h := range habitList {
		pct := engine.HabitMonthPercentage(h.ID, now.Year(), now.Month())
		fmt.Printf("%s %s [%s] — %d%% this month\n", h.Emoji, h.Name, h.Category, pct)
	}

	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	habit, ok := store.FindByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day, err := ParseDay(c.Date)
	if err != nil {
		return err
	}

	if err := store.ToggleCompletion(habit.ID, day); err != nil {
		return err
	}

	dayStr := day.Format("2006-01-02")
	if store.IsCompleted(habit.ID, day) {
		fmt.Printf("Marked habit %q for %s\n", c.Name, dayStr)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", c.Name, dayStr)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	habitList := store.Habits()
	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := time.Now()
	fmt.Printf("Habits for %s:\n\n", now.Format("2006-01-02"))

	done := 0
	for _, h := range habitList {
		status := "[ ]"
		if store.IsCompleted(h.ID, now) {
			status = "[x]"
			done++
		}
		fmt.Printf("%s %s %s\n", status, h.Emoji, h.Name)
	}

	engine := stats.NewEngine(habitList, store.Completions())
	fmt.Printf("\nCompleted: %d/%d (%d%%)\n", done, len(habitList), engine.TodayCompletion(now))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	habit, ok := store.FindByName(c.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q and its completion history.\n", c.Name)
	return nil
}
