package cli

import (
	"fmt"
	"strings"
	"time"

	"habitkeep/internal/stats"
)

type StatsCmd struct {
	Month string `help:"Month to report on, YYYY-MM (default: current month)." default:""`
}

func (c *StatsCmd) Run(ctx *Context) error {
	store, _, err := ctx.OpenHabits()
	if err != nil {
		return err
	}

	year, month, err := ParseMonth(c.Month)
	if err != nil {
		return err
	}

	habitList := store.Habits()
	engine := stats.NewEngine(habitList, store.Completions())
	days := stats.DaysInMonth(year, month)

	fmt.Printf("Stats for %s %d (%d days)\n\n", month, year, days)

	if len(habitList) == 0 {
		fmt.Println("No habits to report on.")
		return nil
	}

	fmt.Printf("Overall completion: %d%%\n", engine.OverallMonthCompletion(year, month))
	fmt.Printf("Today:              %d%%\n\n", engine.TodayCompletion(time.Now()))

	totals := engine.PerHabitMonthTotals(year, month)
	nameWidth := 0
	for _, h := range habitList {
		if len(h.Name) > nameWidth {
			nameWidth = len(h.Name)
		}
	}
	for _, h := range habitList {
		count := totals[h.ID]
		pct := engine.HabitMonthPercentage(h.ID, year, month)
		fmt.Printf("%s %-*s %s %2d/%d (%d%%)\n",
			h.Emoji, nameWidth, h.Name, bar(count, days, 20), count, days, pct)
	}

	fmt.Printf("\nDaily: %s\n", sparkline(engine.DailySeries(year, month)))
	return nil
}

// bar renders a fixed-width block bar for count out of max.
func bar(count, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := count * width / max
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline compresses a 0..100 series into one block character per day.
func sparkline(series []int) string {
	var b strings.Builder
	for _, v := range series {
		idx := v * (len(sparkLevels) - 1) / 100
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}
