package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]any{
		"api": map[string]any{"token": "t", "rate_limit": 5.0},
		"top": 1,
	})
	assert.Equal(t, map[string]any{"api.token": "t", "api.rate_limit": 5.0, "top": 1}, flat)
}

func TestUnflatten(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		nested, err := Unflatten(map[string]any{"a.b.c": 1, "a.d": "x", "e": true})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"a": map[string]any{"b": map[string]any{"c": 1}, "d": "x"},
			"e": true,
		}, nested)
		assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, Flatten(nested))
	})

	t.Run("value and section conflict", func(t *testing.T) {
		_, err := Unflatten(map[string]any{"a": 1, "a.b": 2})
		assert.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	settings := domain.DefaultAppSettings()
	err := Decode(map[string]any{
		"api.rate_limit":           "2.5",
		"api.timeout_seconds":      int64(10),
		"sync.timezone":            "UTC",
		"sync.company_id":          "123",
		"database.path":            "/tmp/x.db",
		"unrelated.key.is.ignored": true,
	}, &settings)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, settings.API.RateLimit, 0.001)
	assert.Equal(t, 10, settings.API.TimeoutSeconds)
	assert.Equal(t, "UTC", settings.Sync.Timezone)
	assert.Equal(t, int64(123), settings.Sync.CompanyID)
	assert.Equal(t, "/tmp/x.db", settings.Database.Path)
	assert.Equal(t, domain.DefaultBaseURL, settings.API.BaseURL, "untouched keys keep defaults")
}

func TestDecode_BadValue(t *testing.T) {
	settings := domain.DefaultAppSettings()
	err := Decode(map[string]any{"api.max_retries": "many"}, &settings)
	assert.Error(t, err)
}
