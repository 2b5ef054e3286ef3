package cli

import (
	"fmt"
	"time"

	"habitkeep/internal/auth"
	"habitkeep/internal/constants"
	"habitkeep/internal/errors"
	"habitkeep/internal/habits"
	"habitkeep/internal/kvstore"
	"habitkeep/internal/models"
	"habitkeep/internal/validation"
)

// Context carries the shared collaborators into every command.
type Context struct {
	KV      kvstore.Provider
	Users   *auth.Directory
	Session *auth.Session
}

// ActiveUser restores the persisted session and returns the active user.
func (c *Context) ActiveUser() (models.User, error) {
	user, err := c.Session.Restore()
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, errors.ErrNotLoggedIn
	}
	return *user, nil
}

// OpenHabits returns the habit store scoped to the active user.
func (c *Context) OpenHabits() (*habits.Store, models.User, error) {
	user, err := c.ActiveUser()
	if err != nil {
		return nil, models.User{}, err
	}
	store, err := habits.NewStore(c.KV, user.Email)
	if err != nil {
		return nil, models.User{}, err
	}
	return store, user, nil
}

// ParseMonth parses a "YYYY-MM" flag value, defaulting to the current
// month when empty.
func ParseMonth(s string) (int, time.Month, error) {
	if s == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.ParseInLocation(constants.MonthFormat, s, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month format: %s (expected YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

// ParseDay parses a --date flag value, defaulting to today when empty.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if err := validation.Day(s); err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(constants.DayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
