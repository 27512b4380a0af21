package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_UsesConfigDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pagecraft", "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirFails(t *testing.T) {
	store, err := NewConfigStore("/dev/null/pagecraft")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[ nope"), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("site.name")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("site.name", "Acme"))
	require.NoError(t, store.Set("builder.default_zoom", 80))
	require.NoError(t, store.Set("site.show_header", true))
	require.NoError(t, store.Set("site.fonts", []string{"Inter", "Lora"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("site.name"), "Acme"},
		{"string wrong type", store.GetString("builder.default_zoom"), ""},
		{"string missing", store.GetString("site.tagline"), ""},
		{"int", store.GetInt("builder.default_zoom"), 80},
		{"int wrong type", store.GetInt("site.name"), 0},
		{"bool", store.GetBool("site.show_header"), true},
		{"bool wrong type", store.GetBool("site.name"), false},
		{"slice", store.GetStringSlice("site.fonts"), []string{"Inter", "Lora"}},
		{"slice missing", store.GetStringSlice("site.other"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_PersistsAsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("site.name", "Acme Careers"))
	require.NoError(t, store.Set("builder.history_limit", 25))
	require.NoError(t, store.Set("site.show_footer", false))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[site]")
	assert.Contains(t, string(raw), "[builder]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "Acme Careers", reloaded.GetString("site.name"))
	assert.Equal(t, 25, reloaded.GetInt("builder.history_limit"))
	assert.False(t, reloaded.GetBool("site.show_footer"))
	_, ok := reloaded.Get("site.show_footer")
	assert.True(t, ok)
}

func TestConfigStore_ReadsHandWrittenTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[site]
name = "Hand Edited"
primary_color = "#000000"

[builder]
default_device = "mobile"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "Hand Edited", store.GetString("site.name"))
	assert.Equal(t, "#000000", store.GetString("site.primary_color"))
	assert.Equal(t, "mobile", store.GetString("builder.default_device"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("site.name", "x"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SaveFailsWhenPathIsDirectory(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("site.name", "x"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := "builder.k" + string(rune('a'+n))
			_ = store.Set(key, n)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestNestMap(t *testing.T) {
	t.Run("splits dotted keys", func(t *testing.T) {
		got := nestMap(map[string]any{"site.name": "a", "site.show_header": true, "top": 1})

		assert.Equal(t, map[string]any{
			"site": map[string]any{"name": "a", "show_header": true},
			"top":  1,
		}, got)
	})

	t.Run("keeps colliding key flat", func(t *testing.T) {
		got := nestMap(map[string]any{"site": "scalar", "site.name": "a"})

		assert.Equal(t, "scalar", got["site"])
		assert.Equal(t, "a", got["site.name"])
	})

	t.Run("round trips through flatten", func(t *testing.T) {
		flat := map[string]any{"a.b.c": 1, "a.d": "x", "e": true}

		assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
	})
}

func TestConfigStore_WatchReloadsOnExternalWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 8)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Retry the write until the watcher has registered the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(store.Path(), []byte("[site]\nname = \"Watched\"\n"), 0600)
		select {
		case <-changed:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, "Watched", store.GetString("site.name"))

	cancel()
	select {
	case err := <-watchErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConfigStore_WatchMissingDirectory(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.RemoveAll(filepath.Dir(store.Path())))

	err := store.Watch(context.Background(), nil)

	assert.Error(t, err)
}

func TestConfigStore_SetWhileWatchingKeepsEveryKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var reloads atomic.Int32
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- store.Watch(ctx, func() { reloads.Add(1) })
	}()
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	const keys = 300
	for i := 0; i < keys; i++ {
		require.NoError(t, store.Set(fmt.Sprintf("site.key_%03d", i), i))
	}
	// Let the watcher drain the events our own writes produced.
	time.Sleep(200 * time.Millisecond)
	cancel()
	require.NoError(t, <-watchErr)

	assert.Zero(t, reloads.Load(), "own saves must not trigger a reload")
	for i := 0; i < keys; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("site.key_%03d", i)))
	}

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	for i := 0; i < keys; i++ {
		assert.Equal(t, i, reopened.GetInt(fmt.Sprintf("site.key_%03d", i)), "key_%03d on disk", i)
	}
}

func TestConfigStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("site.name", "Acme"))
	require.NoError(t, store.Set("site.tagline", "Build with us"))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestConfigStore_ReloadSkipsOwnContent(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("site.name", "Acme"))

	changed, err := store.reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(store.Path(), []byte("[site]\nname = \"Edited\"\n"), 0600))
	changed, err = store.reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Edited", store.GetString("site.name"))
}
