package mcp

import (
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Builder is the editing session the tools operate on.
	Builder driving.BuilderService

	// Templates lists the component palette.
	Templates driving.TemplateRegistry

	// Site manages site-wide branding. Optional.
	Site driving.SiteSettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Builder == nil {
		return ErrMissingBuilderService
	}
	if p.Templates == nil {
		return ErrMissingTemplateRegistry
	}
	return nil
}
