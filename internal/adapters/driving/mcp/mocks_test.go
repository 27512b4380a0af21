package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagecraft/internal/adapters/driven/idgen"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/templates"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
	"github.com/custodia-labs/pagecraft/internal/core/services"
)

// newTestPorts wires a fresh in-memory session with sequential ids.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	registry, err := services.NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	return &Ports{
		Builder:   services.NewBuilderService(registry, idgen.NewSequential("component"), domain.DefaultBuilderConfig()),
		Templates: registry,
		Site:      services.NewSiteSettingsService(memory.NewConfigStore()),
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts(t))
	require.NoError(t, err)
	return server
}

// brokenSite fails every read, like a corrupt config file.
type brokenSite struct {
	driving.SiteSettingsService
}

var errConfigUnreadable = errors.New("config unreadable")

func (brokenSite) Get() (*domain.SiteSettings, error) {
	return nil, errConfigUnreadable
}

func (brokenSite) Update(func(*domain.SiteSettings)) (*domain.SiteSettings, error) {
	return nil, errConfigUnreadable
}
