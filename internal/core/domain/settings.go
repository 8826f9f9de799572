package domain

import "time"

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.7shifts.com"

// DefaultTimezone is used to interpret sync dates when none is configured.
const DefaultTimezone = "America/Edmonton"

// APISettings configures the API client.
type APISettings struct {
	Token           string  `mapstructure:"token"`
	BaseURL         string  `mapstructure:"base_url"`
	RateLimit       float64 `mapstructure:"rate_limit"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds"`
	MaxRetries      int     `mapstructure:"max_retries"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
}

// Timeout returns the request timeout as a duration.
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CacheTTL returns the reference data cache lifetime as a duration.
func (s APISettings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// DatabaseSettings configures the local SQLite store.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// SyncSettings configures the sync command and daemon.
type SyncSettings struct {
	Timezone         string `mapstructure:"timezone"`
	CompanyID        int64  `mapstructure:"company_id"`
	ReceiptChunkSize int    `mapstructure:"receipt_chunk_size"`
	IntervalMinutes  int    `mapstructure:"interval_minutes"`
	LastNDays        int    `mapstructure:"last_n_days"`
}

// Interval returns the daemon sync interval as a duration.
func (s SyncSettings) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// Location loads the configured timezone.
func (s SyncSettings) Location() (*time.Location, error) {
	tz := s.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	return time.LoadLocation(tz)
}

// AppSettings is the full persisted configuration.
type AppSettings struct {
	API      APISettings      `mapstructure:"api"`
	Database DatabaseSettings `mapstructure:"database"`
	Sync     SyncSettings     `mapstructure:"sync"`
}

// DefaultAppSettings returns settings used when nothing is configured.
// Database.Path is left empty and resolved against the config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:         DefaultBaseURL,
			RateLimit:       10,
			TimeoutSeconds:  30,
			MaxRetries:      3,
			CacheTTLSeconds: 300,
		},
		Sync: SyncSettings{
			Timezone:         DefaultTimezone,
			ReceiptChunkSize: 1000,
			IntervalMinutes:  60,
			LastNDays:        2,
		},
	}
}

// SettingKeys lists the keys accepted by 'settings set'.
func SettingKeys() []string {
	return []string{
		"api.base_url",
		"api.rate_limit",
		"api.timeout_seconds",
		"api.max_retries",
		"api.cache_ttl_seconds",
		"database.path",
		"sync.timezone",
		"sync.company_id",
		"sync.receipt_chunk_size",
		"sync.interval_minutes",
		"sync.last_n_days",
	}
}
