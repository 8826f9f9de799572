package driving

import "github.com/prairiedogbeer/go7shifts/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the stored settings layered over the defaults.
	Get() (*domain.AppSettings, error)

	// Set parses value for the given dot-separated key and persists it.
	Set(key, value string) error

	// SetToken stores the API access token.
	SetToken(token string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the configuration file location.
	ConfigPath() string
}
