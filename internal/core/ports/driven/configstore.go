package driven

import "context"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Decode overlays the stored configuration onto out, a pointer to a
	// struct using mapstructure tags. Keys absent from the store leave the
	// corresponding fields untouched.
	Decode(out any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// ConfigWatcher reports changes made to the configuration outside the
// running process.
type ConfigWatcher interface {
	// Watch reloads the configuration whenever its file changes and sends
	// on the returned channel after each successful reload. The channel is
	// closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
