// Package memory provides in-memory driven adapters for tests and for
// sessions started with --ephemeral, where nothing touches the disk.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interfaces.
var (
	_ driven.ConfigStore   = (*ConfigStore)(nil)
	_ driven.ConfigWatcher = (*ConfigStore)(nil)
)

// ConfigStore keeps configuration in a map. Watchers are notified on every
// Set, which stands in for the external edits a file store would observe.
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]any
	watchers map[int]func()
	nextID   int
}

// NewConfigStore creates an in-memory config store seeded with values.
// The seed map is copied.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{
		values:   make(map[string]any),
		watchers: make(map[int]func()),
	}
	for _, m := range seed {
		for k, v := range m {
			s.values[k] = v
		}
	}
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt retrieves an integer configuration value. Float values are
// truncated, matching what JSON-decoded seeds contain.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
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

// Set stores a configuration value and notifies watchers.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	callbacks := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// Save is a no-op; values live only as long as the process.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; there is no backing storage to reread.
func (s *ConfigStore) Load() error { return nil }

// Path returns a marker instead of a file path.
func (s *ConfigStore) Path() string { return ":memory:" }

// Watch registers onChange for every subsequent Set and blocks until ctx
// is done.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	if onChange == nil {
		<-ctx.Done()
		return nil
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = onChange
	s.mu.Unlock()

	<-ctx.Done()

	s.mu.Lock()
	delete(s.watchers, id)
	s.mu.Unlock()
	return nil
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := val.(T)
	return typed, ok
}
