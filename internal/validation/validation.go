package validation

import (
	"strings"

	"habitkeep/internal/constants"
	"habitkeep/internal/errors"
)

// HabitName trims and validates a habit name, returning the trimmed value.
func HabitName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewValidationError("habit name cannot be empty")
	}
	return trimmed, nil
}

// UserName validates a display name.
func UserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name cannot be empty")
	}
	return nil
}

// Email validates the shape of an email address. Addresses are identity
// keys and compared case-sensitively, so no normalization happens here.
func Email(email string) error {
	if email == "" {
		return errors.NewValidationError("email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.NewValidationError("invalid email address: %s", email)
	}
	if strings.ContainsAny(email, " \t") {
		return errors.NewValidationError("invalid email address: %s", email)
	}
	return nil
}

// Password enforces the minimum password length.
func Password(password string) error {
	if len(password) < constants.MinPasswordLen {
		return errors.NewValidationError("password must be at least %d characters", constants.MinPasswordLen)
	}
	return nil
}

// PasswordsMatch checks a password against its confirmation.
func PasswordsMatch(password, confirm string) error {
	if password != confirm {
		return errors.NewValidationError("passwords do not match")
	}
	return nil
}

// Day validates a YYYY-MM-DD date string shape without parsing it fully;
// callers that need a time.Time parse with constants.DayFormat.
func Day(day string) error {
	if len(day) != 10 || day[4] != '-' || day[7] != '-' {
		return errors.NewValidationError("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return nil
}
