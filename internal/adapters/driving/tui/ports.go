// Package tui provides an interactive terminal page builder for pagecraft.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Builder is the editing session shown on the canvas.
	Builder driving.BuilderService

	// Templates lists the component palette.
	Templates driving.TemplateRegistry

	// Site manages site-wide branding.
	Site driving.SiteSettingsService

	// ConfigWatcher reports external edits to the config file. Optional.
	ConfigWatcher driven.ConfigWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	builder driving.BuilderService,
	templates driving.TemplateRegistry,
	site driving.SiteSettingsService,
) *Ports {
	return &Ports{
		Builder:   builder,
		Templates: templates,
		Site:      site,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Builder == nil {
		return ErrMissingBuilderService
	}
	if p.Templates == nil {
		return ErrMissingTemplateRegistry
	}
	if p.Site == nil {
		return ErrMissingSiteService
	}
	return nil
}
