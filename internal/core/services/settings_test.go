package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/storage/memory"
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestSettingsService_Get(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore())

		settings, err := service.Get()
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAppSettings(), *settings)
		assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
	})

	t.Run("stored values override defaults", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set("api.rate_limit", 2.5))
		require.NoError(t, store.Set("sync.company_id", 7))
		require.NoError(t, store.Set("sync.timezone", "America/Toronto"))
		require.NoError(t, store.Set("database.path", "/tmp/7shifts.db"))

		settings, err := NewSettingsService(store).Get()
		require.NoError(t, err)
		assert.InDelta(t, 2.5, settings.API.RateLimit, 0.001)
		assert.Equal(t, int64(7), settings.Sync.CompanyID)
		assert.Equal(t, "America/Toronto", settings.Sync.Timezone)
		assert.Equal(t, "/tmp/7shifts.db", settings.Database.Path)
		assert.Equal(t, domain.DefaultBaseURL, settings.API.BaseURL)
		assert.Equal(t, 1000, settings.Sync.ReceiptChunkSize)
	})

	t.Run("values written as strings are converted", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set("api.timeout_seconds", "45"))

		settings, err := NewSettingsService(store).Get()
		require.NoError(t, err)
		assert.Equal(t, 45, settings.API.TimeoutSeconds)
	})
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	valid := []struct {
		key, value string
		want       any
	}{
		{"api.base_url", "https://api.7shifts.com/", "https://api.7shifts.com"},
		{"api.rate_limit", "0", 0.0},
		{"api.timeout_seconds", "60", 60},
		{"api.max_retries", "0", 0},
		{"api.cache_ttl_seconds", "600", 600},
		{"database.path", "~/data/7shifts.db", "~/data/7shifts.db"},
		{"sync.timezone", "America/Vancouver", "America/Vancouver"},
		{"sync.company_id", "1234", int64(1234)},
		{"sync.receipt_chunk_size", "500", 500},
		{"sync.interval_minutes", "15", 15},
		{" SYNC.LAST_N_DAYS ", " 7 ", 7},
	}
	for _, tc := range valid {
		t.Run(tc.key, func(t *testing.T) {
			require.NoError(t, service.Set(tc.key, tc.value))
			got, ok := store.Get(strings.ToLower(strings.TrimSpace(tc.key)))
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	invalid := []struct{ key, value string }{
		{"api.base_url", "ftp://example.com"},
		{"api.base_url", "not a url"},
		{"api.rate_limit", "-1"},
		{"api.timeout_seconds", "0"},
		{"api.max_retries", "lots"},
		{"sync.company_id", "-5"},
		{"sync.timezone", "Mars/Olympus_Mons"},
		{"database.path", ""},
		{"api.token", "secret"},
		{"search.mode", "hybrid"},
	}
	for _, tc := range invalid {
		t.Run("rejects "+tc.key+"="+tc.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tc.key, tc.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetToken(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetToken("  abc123\n"))
	assert.Equal(t, "abc123", store.GetString("api.token"))

	assert.ErrorIs(t, service.SetToken("   "), domain.ErrInvalidInput)
}

// failingConfigStore fails every Set.
type failingConfigStore struct {
	*memory.ConfigStore
}

func (f *failingConfigStore) Set(_ string, _ any) error {
	return assert.AnError
}

func TestSettingsService_StoreErrors(t *testing.T) {
	service := NewSettingsService(&failingConfigStore{ConfigStore: memory.NewConfigStore()})

	assert.ErrorIs(t, service.Set("sync.interval_minutes", "5"), assert.AnError)
	assert.ErrorIs(t, service.SetToken("abc"), assert.AnError)
}

func TestSettingsService_ConfigPath(t *testing.T) {
	store := memory.NewConfigStore()
	assert.Equal(t, store.Path(), NewSettingsService(store).ConfigPath())
}
