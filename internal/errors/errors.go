package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"habitkeep/internal/logger"
)

var (
	// ErrDuplicateUser is returned when registering an email that already
	// exists in the user directory.
	ErrDuplicateUser = stderrors.New("a user with this email already exists")

	// ErrInvalidCredentials is returned on login with an unknown email or
	// a wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = stderrors.New("invalid email or password")

	// ErrNotLoggedIn is returned by commands that require an active session.
	ErrNotLoggedIn = stderrors.New("not logged in, run 'habitkeep login' first")
)

// ValidationError reports rejected user input (empty habit name, short
// password, mismatched confirmation).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
