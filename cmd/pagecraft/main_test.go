package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/cli"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

func TestBootstrap_Ephemeral(t *testing.T) {
	s, err := bootstrap(cli.Options{Ephemeral: true})

	require.NoError(t, err)
	assert.Nil(t, s.ConfigWatcher)
	assert.Equal(t, domain.DefaultBuilderConfig(), s.BuilderConfig)

	builder := s.NewBuilder(nil)
	id, err := builder.Add(domain.ComponentHeading, "")
	require.NoError(t, err)
	assert.Len(t, id, 36, "interactive sessions use UUIDs")
}

func TestBootstrap_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	config := "[builder]\ndefault_zoom = 120\ndefault_device = \"mobile\"\n\n[site]\nname = \"Acme\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o600))

	s, err := bootstrap(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	assert.NotNil(t, s.ConfigWatcher)
	assert.Equal(t, 120, s.BuilderConfig.DefaultZoom)
	assert.Equal(t, domain.DeviceMobile, s.BuilderConfig.DefaultDevice)
	site, err := s.Site.Get()
	require.NoError(t, err)
	assert.Equal(t, "Acme", site.Name)
	assert.Equal(t, domain.Viewport{Zoom: 120, Device: domain.DeviceMobile}, s.NewBuilder(nil).Viewport())
}

func TestBootstrap_MissingTemplatesFile(t *testing.T) {
	dir := t.TempDir()
	config := "[builder]\ntemplates_file = \"" + filepath.ToSlash(filepath.Join(dir, "nope.yaml")) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o600))

	_, err := bootstrap(cli.Options{ConfigDir: dir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load templates")
}
