package habits

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"habitkeep/internal/constants"
	"habitkeep/internal/kvstore"
	"habitkeep/internal/logger"
	"habitkeep/internal/models"
	"habitkeep/internal/validation"
)

// Store owns the habit list and completion matrix for one user. It is
// bound to the user at construction; switching users means constructing
// a new Store. Every mutation persists the full affected value before
// returning.
type Store struct {
	kv    kvstore.Provider
	email string

	habits      []models.Habit
	completions models.CompletionMatrix
	darkMode    bool
}

// NewStore loads the habit state for the given user. Missing or
// malformed persisted values degrade to empty defaults.
func NewStore(kv kvstore.Provider, email string) (*Store, error) {
	s := &Store{
		kv:    kv,
		email: email,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.habits = []models.Habit{}
	if raw, ok, err := s.kv.Get(s.key(constants.SuffixHabits)); err != nil {
		return err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.habits); err != nil {
			logger.Warn("Habit list is malformed, starting empty", "email", s.email, "error", err)
			s.habits = []models.Habit{}
		}
	}

	s.completions = models.CompletionMatrix{}
	if raw, ok, err := s.kv.Get(s.key(constants.SuffixCompletions)); err != nil {
		return err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.completions); err != nil {
			logger.Warn("Completion matrix is malformed, starting empty", "email", s.email, "error", err)
			s.completions = models.CompletionMatrix{}
		}
	}

	s.darkMode = true
	if raw, ok, err := s.kv.Get(s.key(constants.SuffixDarkMode)); err != nil {
		return err
	} else if ok {
		var v bool
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			s.darkMode = v
		}
	}

	return nil
}

func (s *Store) key(suffix string) string {
	return constants.UserKey(s.email, suffix)
}

// Email returns the owning user's email.
func (s *Store) Email() string {
	return s.email
}

// AddHabit appends a new habit. Insertion order is display order. The
// name is trimmed and must be non-empty; category and emoji fall back to
// their defaults when blank.
func (s *Store) AddHabit(name, category, emoji string) (models.Habit, error) {
	trimmed, err := validation.HabitName(name)
	if err != nil {
		return models.Habit{}, err
	}
	if category == "" {
		category = constants.DefaultCategory
	}
	if emoji == "" {
		emoji = constants.DefaultEmoji
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      trimmed,
		Category:  category,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}

	s.habits = append(s.habits, habit)
	if err := s.saveHabits(); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// DeleteHabit removes the habit and its completions sub-map together.
// Deleting an unknown id is a no-op, not an error. Both values are
// persisted before returning so no caller can observe a habit without
// its completions removed, or vice versa.
func (s *Store) DeleteHabit(id string) error {
	kept := s.habits[:0]
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	delete(s.completions, id)

	if err := s.saveHabits(); err != nil {
		return err
	}
	return s.saveCompletions()
}

// FindByName returns the first habit with the given name.
func (s *Store) FindByName(name string) (models.Habit, bool) {
	for _, h := range s.habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// ToggleCompletion flips the completion marker for habitID on the given
// day. It is an XOR, not a set: calling it twice restores the prior
// state. The habit id is not checked against the habit list; toggling an
// unknown id creates an orphaned entry (reported by 'habitkeep doctor').
func (s *Store) ToggleCompletion(habitID string, day time.Time) error {
	dayStr := day.Format(constants.DayFormat)
	if s.completions[habitID] == nil {
		s.completions[habitID] = make(map[string]bool)
	}

	if s.completions[habitID][dayStr] {
		delete(s.completions[habitID], dayStr)
	} else {
		s.completions[habitID][dayStr] = true
	}

	return s.saveCompletions()
}

// IsCompleted reports whether the habit was done on the given day. Pure
// lookup, never mutates.
func (s *Store) IsCompleted(habitID string, day time.Time) bool {
	return s.completions.Completed(habitID, day.Format(constants.DayFormat))
}

// Habits returns the habit list in insertion order.
func (s *Store) Habits() []models.Habit {
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Completions returns a snapshot of the completion matrix.
func (s *Store) Completions() models.CompletionMatrix {
	return s.completions.Clone()
}

// DarkMode returns the persisted dark-mode flag (default true).
func (s *Store) DarkMode() bool {
	return s.darkMode
}

// SetDarkMode persists the dark-mode flag.
func (s *Store) SetDarkMode(on bool) error {
	s.darkMode = on
	raw, err := json.Marshal(on)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key(constants.SuffixDarkMode), string(raw))
}

// Replace overwrites the habit list and completion matrix, persisting
// both. Used by the JSON import loader.
func (s *Store) Replace(habits []models.Habit, completions models.CompletionMatrix) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	if completions == nil {
		completions = models.CompletionMatrix{}
	}
	s.habits = habits
	s.completions = completions

	if err := s.saveHabits(); err != nil {
		return err
	}
	return s.saveCompletions()
}

func (s *Store) saveHabits() error {
	raw, err := json.Marshal(s.habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}
	return s.kv.Set(s.key(constants.SuffixHabits), string(raw))
}

func (s *Store) saveCompletions() error {
	raw, err := json.Marshal(s.completions)
	if err != nil {
		return fmt.Errorf("failed to serialize completions: %w", err)
	}
	return s.kv.Set(s.key(constants.SuffixCompletions), string(raw))
}
