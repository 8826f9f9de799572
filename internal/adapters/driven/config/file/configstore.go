package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/config"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// Ensure ConfigStore implements the interfaces.
var (
	_ driven.ConfigStore   = (*ConfigStore)(nil)
	_ driven.ConfigWatcher = (*ConfigStore)(nil)
)

// DirName is the config directory under the user's home.
const DirName = ".7shifts"

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Keys are held flat in dot notation and written back as TOML tables.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// DefaultDir returns ~/.7shifts.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.7shifts/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if existed {
			s.data[key] = previous
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Decode overlays the stored values onto out.
func (s *ConfigStore) Decode(out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return config.Decode(s.data, out)
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	nested, err := config.Unflatten(s.data)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(nested)
	if err != nil {
		return err
	}

	// The file may hold the API token.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.data = config.Flatten(loaded)
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Watch watches the config directory and reloads when the file is written,
// created or renamed into place. A reload that fails to parse keeps the
// previous values.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("watching %s for config changes", dir)

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != s.filePath {
					continue
				}
				if err := s.reload(); err != nil {
					logger.Warn("config reload failed: %v", err)
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// reload loads the file but keeps the current values if it cannot be
// parsed, which happens while an editor is half way through a write.
func (s *ConfigStore) reload() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.mu.Lock()
	s.data = config.Flatten(loaded)
	s.mu.Unlock()
	return nil
}
