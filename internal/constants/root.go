package constants

const (
	AppName = "habitkeep"

	// DefaultConfigPath is the default SQLite store location.
	DefaultConfigPath = "~/.config/habitkeep/habitkeep.db"

	// DefaultKeyringUser is the keyring account under which the Postgres
	// connection string is stored.
	DefaultKeyringUser = "default"

	// DayFormat is the date layout used for completion keys and exports.
	// Dates are always local-time; normalizing to UTC shifts days across
	// timezones.
	DayFormat = "2006-01-02"

	// MonthFormat is the layout accepted by --month flags.
	MonthFormat = "2006-01"
)

const (
	DefaultCategory = "other"
	DefaultEmoji    = "🎯"

	MinPasswordLen = 6
)

// Storage key layout. Global keys are shared; per-user keys are prefixed
// with the owning user's email.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"

	SuffixHabits      = "habits"
	SuffixCompletions = "completions"
	SuffixDarkMode    = "darkMode"
)

// UserKey builds a per-user storage key, e.g. "ana@example.com_habits".
func UserKey(email, suffix string) string {
	return email + "_" + suffix
}
