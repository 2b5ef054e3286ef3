package tui

import (
	"fmt"
	"strings"
	"time"

	"habitkeep/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateAddForm && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var b strings.Builder

	year, month := m.month.Year(), m.month.Month()
	habitList := m.store.Habits()
	engine := stats.NewEngine(habitList, m.store.Completions())
	days := stats.DaysInMonth(year, month)

	header := fmt.Sprintf("%s — %s %d", m.user.Name, month, year)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(fmt.Sprintf(
		"month %d%% · today %d%%",
		engine.OverallMonthCompletion(year, month),
		engine.TodayCompletion(time.Now()),
	)))
	b.WriteString("\n\n")

	if m.state == stateConfirmDelete {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Delete %q and all its history? (y/n)", m.confirmName)))
		b.WriteString("\n\n")
	}

	if len(habitList) == 0 {
		b.WriteString("No habits yet. Press 'a' to add one.\n")
	}

	totals := engine.PerHabitMonthTotals(year, month)
	now := time.Now()
	for i, h := range habitList {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		if m.store.IsCompleted(h.ID, now) {
			check = doneStyle.Render("[x]")
		}

		line := fmt.Sprintf("%s%s %s %s  %s %d/%d (%d%%)",
			cursor, check, h.Emoji, h.Name,
			monthBar(totals[h.ID], days),
			totals[h.ID], days,
			engine.HabitMonthPercentage(h.ID, year, month))
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func monthBar(count, days int) string {
	const width = 15
	if days <= 0 {
		days = 1
	}
	filled := count * width / days
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
