package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[api\ntoken ="), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "hello"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, "hello", store.GetString("s"))
	assert.Equal(t, 42, store.GetInt("i"))
	assert.True(t, store.GetBool("b"))

	assert.Empty(t, store.GetString("i"))
	assert.Zero(t, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
	assert.Empty(t, store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("api.token", "secret"))
	require.NoError(t, store1.Set("sync.company_id", 42))
	require.NoError(t, store1.Set("sync.timezone", "UTC"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "secret", store2.GetString("api.token"))
	assert.Equal(t, 42, store2.GetInt("sync.company_id"))
	assert.Equal(t, "UTC", store2.GetString("sync.timezone"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.base_url", "http://localhost"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[api]")
	assert.NotContains(t, string(data), "'api.base_url'")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.token", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("bad", make(chan int))
	assert.Error(t, err)

	_, ok := store.Get("bad")
	assert.False(t, ok, "failed write is rolled back")
}

func TestConfigStore_SetConflictingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.token", "x"))

	assert.Error(t, store.Set("api", "flat"))
	assert.Equal(t, "x", store.GetString("api.token"))
}

func TestConfigStore_Decode(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[api]
rate_limit = 4
timeout_seconds = 12

[sync]
timezone = "America/Regina"
company_id = 77
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings := domain.DefaultAppSettings()
	require.NoError(t, store.Decode(&settings))
	assert.InDelta(t, 4.0, settings.API.RateLimit, 0.001)
	assert.Equal(t, 12, settings.API.TimeoutSeconds)
	assert.Equal(t, "America/Regina", settings.Sync.Timezone)
	assert.Equal(t, int64(77), settings.Sync.CompanyID)
	assert.Equal(t, domain.DefaultBaseURL, settings.API.BaseURL)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("sync.interval_minutes", 60))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		tmp := filepath.Join(tmpDir, "config.toml.tmp")
		_ = os.WriteFile(tmp, []byte("[sync]\ninterval_minutes = 15\n"), 0600)
		_ = os.Rename(tmp, store.Path())
	}()

	select {
	case <-changes:
		assert.Equal(t, 15, store.GetInt("sync.interval_minutes"))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config change")
	}

	cancel()
	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(2 * time.Second):
		t.Fatal("changes channel not closed after cancel")
	}
}

func TestConfigStore_WatchIgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "7shifts.db"), []byte("x"), 0600))

	select {
	case <-changes:
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
