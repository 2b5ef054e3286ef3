package kvstore

// Provider is a string key to string value store. Values are JSON-encoded
// by callers; the store itself is format-agnostic. Writes are synchronous
// and last-writer-wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error

	// Keys returns all stored keys, in no particular order.
	Keys() ([]string, error)

	// ConfigPath returns the store location (file path or connection string).
	ConfigPath() string
}
