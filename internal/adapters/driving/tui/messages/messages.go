// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCanvas is the layers list, page preview and inspector.
	ViewCanvas ViewType = iota
	// ViewPalette picks a template to add.
	ViewPalette
	// ViewSite edits site-wide branding.
	ViewSite
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCanvas:
		return "canvas"
	case ViewPalette:
		return "palette"
	case ViewSite:
		return "site"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentChanged is sent after a builder command succeeded.
// Status is a short description for the status bar.
type DocumentChanged struct {
	Status string
}

// AddRequested asks for the palette, adding under ParentID ("" for root).
type AddRequested struct {
	ParentID string
}

// TemplateChosen is sent when a palette entry is picked.
type TemplateChosen struct {
	Type     domain.ComponentType
	ParentID string
}

// ClipboardMirrored reports the result of copying a component to the
// system clipboard. Err is set when no system clipboard is available.
type ClipboardMirrored struct {
	ID  string
	Err error
}

// SiteLoaded carries the site settings.
type SiteLoaded struct {
	Settings *domain.SiteSettings
	Err      error
}

// SiteSaved signals site settings were saved.
type SiteSaved struct {
	Settings *domain.SiteSettings
	Err      error
}

// ConfigReloaded signals the config file was changed outside the TUI.
type ConfigReloaded struct{}
