package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.token", "original"))
	require.NoError(t, store.Set("api.token", "updated"))

	val, ok := store.Get("api.token")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 7))
	require.NoError(t, store.Set("i64", int64(8)))
	require.NoError(t, store.Set("f", 9.0))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 8, store.GetInt("i64"))
	assert.Equal(t, 9, store.GetInt("f"))
	assert.True(t, store.GetBool("b"))

	assert.Empty(t, store.GetString("i"))
	assert.Zero(t, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
}

func TestConfigStore_Decode(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("sync.last_n_days", "5"))
	require.NoError(t, store.Set("database.path", "/data/7shifts.db"))

	settings := domain.DefaultAppSettings()
	require.NoError(t, store.Decode(&settings))
	assert.Equal(t, 5, settings.Sync.LastNDays)
	assert.Equal(t, "/data/7shifts.db", settings.Database.Path)
	assert.Equal(t, domain.DefaultTimezone, settings.Sync.Timezone)
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", n)
			_ = store.GetInt("key")
			settings := domain.DefaultAppSettings()
			_ = store.Decode(&settings)
		}(i)
	}
	wg.Wait()
}
