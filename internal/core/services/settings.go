package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

//nolint:gosec // G101: a config key name, not a credential.
const keyAPIToken = "api.token"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings layered over the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if err := s.configStore.Decode(&settings); err != nil {
		return nil, fmt.Errorf("reading settings from %s: %w", s.configStore.Path(), err)
	}
	return &settings, nil
}

// Set parses value according to the key's type, checks it and persists it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetToken stores the API access token.
func (s *SettingsService) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyAPIToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

//nolint:gocyclo // one case per key
func parseSetting(key, value string) (any, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, key, fmt.Sprintf(format, args...))
	}

	switch key {
	case "api.base_url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalid("%q is not an http(s) URL", value)
		}
		return strings.TrimRight(value, "/"), nil

	case "api.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, invalid("must be a non-negative number of requests per second")
		}
		return f, nil

	case "api.timeout_seconds", "sync.interval_minutes", "sync.last_n_days", "sync.receipt_chunk_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, invalid("must be a positive integer")
		}
		return n, nil

	case "api.max_retries", "api.cache_ttl_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, invalid("must be zero or a positive integer")
		}
		return n, nil

	case "sync.company_id":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id < 0 {
			return nil, invalid("must be a company ID, or 0 for every company")
		}
		return id, nil

	case "sync.timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return nil, invalid("unknown timezone %q", value)
		}
		return value, nil

	case "database.path":
		if value == "" {
			return nil, invalid("path is empty")
		}
		return value, nil

	case keyAPIToken:
		return nil, invalid("use '7shifts settings token' to store the access token")

	default:
		return nil, fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(domain.SettingKeys(), ", "))
	}
}
