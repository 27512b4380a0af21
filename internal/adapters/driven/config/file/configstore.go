package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

var (
	_ driven.ConfigStore   = (*ConfigStore)(nil)
	_ driven.ConfigWatcher = (*ConfigStore)(nil)
)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Keys are held flat in dot notation and written back as nested TOML tables,
// so "site.name" is stored as name under [site].
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any

	// written is the last content this store put on disk. The watcher
	// skips reloads of it so its own saves never clobber newer values.
	written []byte
}

// NewConfigStore opens configDir/config.toml, creating the directory if
// needed. An empty configDir means ~/.pagecraft.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".pagecraft")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under a dotted key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString returns "" for missing or non-string values.
func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt accepts the int64 values go-toml decodes as well as ints set in
// process. Anything else reads as 0.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool returns false for missing or non-boolean values.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetStringSlice returns the string items of an array value, dropping
// anything that is not a string.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, _ := s.Get(key)
	typed, ok := val.(T)
	return typed, ok
}

// Set stores value under key and rewrites config.toml.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.writeLocked()
}

// Save rewrites config.toml from memory.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked()
}

// writeLocked replaces config.toml atomically: readers see either the old
// or the new file, never a truncated one.
func (s *ConfigStore) writeLocked() error {
	encoded, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.filePath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return fmt.Errorf("write %s: %w", s.filePath, err)
	}
	s.written = encoded
	return nil
}

// Load replaces the in-memory values with the contents of config.toml.
// A missing file loads as empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.loadLocked(false)
	return err
}

// reload is Load for the watcher. It reports false without touching memory
// when the file holds exactly what this store last wrote.
func (s *ConfigStore) reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(true)
}

func (s *ConfigStore) loadLocked(skipOwn bool) (bool, error) {
	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		raw, err = nil, nil
	}
	if err != nil {
		return false, err
	}
	if skipOwn && s.written != nil && bytes.Equal(raw, s.written) {
		return false, nil
	}

	tables := map[string]any{}
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return false, fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.data = flattenMap(tables, "")
	s.written = raw
	return true, nil
}

// Watch reloads the store whenever config.toml changes on disk and calls
// onChange after every successful reload. The directory is watched rather
// than the file so that editors which save by rename are picked up.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			changed, err := s.reload()
			if err != nil {
				logger.Warn("config: reload %s failed: %v", s.filePath, err)
				continue
			}
			if !changed {
				continue
			}
			logger.Debug("config: reloaded %s", s.filePath)
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watcher error: %v", err)
		}
	}
}

// flattenMap turns TOML tables into dotted keys: [site] name becomes site.name.
func flattenMap(tables map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range tables {
		if prefix != "" {
			key = prefix + "." + key
		}
		nested, isTable := value.(map[string]any)
		if !isTable {
			flat[key] = value
			continue
		}
		for k, v := range flattenMap(nested, key) {
			flat[k] = v
		}
	}
	return flat
}

// nestMap is the inverse of flattenMap: {"a.b": 1} becomes {"a": {"b": 1}}.
// A key whose path collides with a scalar is kept verbatim at the top level.
func nestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		if !insertPath(result, parts, flat[key]) {
			result[key] = flat[key]
		}
	}
	return result
}

func insertPath(m map[string]any, parts []string, value any) bool {
	if len(parts) == 1 {
		if _, taken := m[parts[0]]; taken {
			return false
		}
		m[parts[0]] = value
		return true
	}

	child, ok := m[parts[0]]
	if !ok {
		nested := make(map[string]any)
		m[parts[0]] = nested
		return insertPath(nested, parts[1:], value)
	}
	nested, ok := child.(map[string]any)
	if !ok {
		return false
	}
	return insertPath(nested, parts[1:], value)
}

// Path returns the location of config.toml.
func (s *ConfigStore) Path() string {
	return s.filePath
}
