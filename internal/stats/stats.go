package stats

import (
	"fmt"
	"math"
	"time"

	"habitkeep/internal/constants"
	"habitkeep/internal/models"
)

// Engine computes derived statistics over a habit-store snapshot. All
// functions are pure and recompute from scratch; at dozens of habits and
// hundreds of days there is nothing worth caching.
type Engine struct {
	habits      []models.Habit
	completions models.CompletionMatrix
}

func NewEngine(habits []models.Habit, completions models.CompletionMatrix) *Engine {
	return &Engine{habits: habits, completions: completions}
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// monthPrefix returns the "YYYY-MM-" prefix shared by all day keys in a
// month. Day keys are zero-padded so prefix matching is exact.
func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// roundPct converts a ratio to a 0..100 integer, rounding half up.
func roundPct(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// monthCount returns the number of completions for habitID within the month.
func (e *Engine) monthCount(habitID string, year int, month time.Month) int {
	prefix := monthPrefix(year, month)
	count := 0
	for day := range e.completions[habitID] {
		if len(day) >= len(prefix) && day[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

// HabitMonthPercentage is the share of days in the month on which the
// habit was completed, rounded to an integer percentage. A habit with no
// completions entry yields 0.
func (e *Engine) HabitMonthPercentage(habitID string, year int, month time.Month) int {
	if len(e.completions[habitID]) == 0 {
		return 0
	}
	return roundPct(e.monthCount(habitID, year, month), DaysInMonth(year, month))
}

// TodayCompletion is the share of habits completed on the given real
// date, regardless of any displayed month. Zero habits yields 0.
func (e *Engine) TodayCompletion(now time.Time) int {
	if len(e.habits) == 0 {
		return 0
	}
	today := now.Format(constants.DayFormat)
	completed := 0
	for _, h := range e.habits {
		if e.completions.Completed(h.ID, today) {
			completed++
		}
	}
	return roundPct(completed, len(e.habits))
}

// OverallMonthCompletion is the share of all habit-days in the month
// that were completed. Zero habits yields 0.
func (e *Engine) OverallMonthCompletion(year int, month time.Month) int {
	if len(e.habits) == 0 {
		return 0
	}
	total := 0
	for _, h := range e.habits {
		total += e.monthCount(h.ID, year, month)
	}
	return roundPct(total, len(e.habits)*DaysInMonth(year, month))
}

// DailySeries returns, for each calendar day of the month, the
// percentage of habits completed that day. The slice has exactly
// DaysInMonth entries.
func (e *Engine) DailySeries(year int, month time.Month) []int {
	days := DaysInMonth(year, month)
	series := make([]int, days)
	if len(e.habits) == 0 {
		return series
	}

	for day := 1; day <= days; day++ {
		dayStr := fmt.Sprintf("%s%02d", monthPrefix(year, month), day)
		completed := 0
		for _, h := range e.habits {
			if e.completions.Completed(h.ID, dayStr) {
				completed++
			}
		}
		series[day-1] = roundPct(completed, len(e.habits))
	}
	return series
}

// PerHabitMonthTotals returns raw completion counts within the month,
// keyed by habit id. Used for bar-chart magnitudes where the
// denominator is DaysInMonth.
func (e *Engine) PerHabitMonthTotals(year int, month time.Month) map[string]int {
	totals := make(map[string]int, len(e.habits))
	for _, h := range e.habits {
		totals[h.ID] = e.monthCount(h.ID, year, month)
	}
	return totals
}
