package models

import "time"

// Habit represents a recurring practice to track. Habits are immutable
// after creation except for deletion; there is no edit operation.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// CompletionMatrix is a sparse record of which days each habit was done:
// habit ID -> day ("YYYY-MM-DD", local time) -> present. Absence of a key
// means not completed.
type CompletionMatrix map[string]map[string]bool

// Completed reports whether the habit was marked done on the given day.
func (m CompletionMatrix) Completed(habitID, day string) bool {
	return m[habitID][day]
}

// Count returns the lifetime completion count for a habit.
func (m CompletionMatrix) Count(habitID string) int {
	return len(m[habitID])
}

// Clone returns a deep copy of the matrix.
func (m CompletionMatrix) Clone() CompletionMatrix {
	out := make(CompletionMatrix, len(m))
	for id, days := range m {
		cp := make(map[string]bool, len(days))
		for d, v := range days {
			cp[d] = v
		}
		out[id] = cp
	}
	return out
}
