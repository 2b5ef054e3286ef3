package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"habitkeep/internal/models"
)

// Snapshot is the JSON export shape. ExportDate marshals as an RFC 3339
// timestamp. A snapshot re-imported through ParseJSON reconstructs an
// identical habit list and completion matrix.
type Snapshot struct {
	Habits      []models.Habit          `json:"habits"`
	Completions models.CompletionMatrix `json:"completions"`
	ExportDate  time.Time               `json:"exportDate"`
}

// CSV renders the export table: one row per habit with its lifetime
// completion count (not month-scoped). Name and category are always
// quoted.
func CSV(habits []models.Habit, completions models.CompletionMatrix) string {
	var b strings.Builder
	b.WriteString("Habit,Category,Completions\n")
	for _, h := range habits {
		fmt.Fprintf(&b, "%s,%s,%d\n", quote(h.Name), quote(h.Category), completions.Count(h.ID))
	}
	return b.String()
}

// quote wraps a field in double quotes, doubling any embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// JSON renders the full-state export.
func JSON(habits []models.Habit, completions models.CompletionMatrix, exportedAt time.Time) ([]byte, error) {
	snap := Snapshot{
		Habits:      habits,
		Completions: completions,
		ExportDate:  exportedAt,
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ParseJSON is the compatible loader for a JSON export.
func ParseJSON(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse export: %w", err)
	}
	if snap.Habits == nil {
		snap.Habits = []models.Habit{}
	}
	if snap.Completions == nil {
		snap.Completions = models.CompletionMatrix{}
	}
	return snap, nil
}
