package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColour = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// SiteSettings holds site-wide branding for the career site.
// It is independent of the component document and is not historied.
type SiteSettings struct {
	// Name is the site title shown in the header.
	Name string `json:"name"`

	// Tagline is an optional subtitle.
	Tagline string `json:"tagline,omitempty"`

	// LogoURL points to the header logo.
	LogoURL string `json:"logoUrl,omitempty"`

	// Colours, as #RGB or #RRGGBB.
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`

	// Font families.
	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`

	// ShowHeader renders the site header above the page.
	ShowHeader bool `json:"showHeader"`

	// ShowFooter renders the site footer below the page.
	ShowFooter bool `json:"showFooter"`
}

// DefaultSiteSettings returns the settings of a freshly created site.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Name:            "Careers",
		PrimaryColor:    "#4F46E5",
		SecondaryColor:  "#0EA5E9",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#111827",
		HeadingFont:     "Inter",
		BodyFont:        "Inter",
		ShowHeader:      true,
		ShowFooter:      true,
	}
}

// Validate checks that the settings can be applied.
func (s SiteSettings) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site name is required: %w", ErrInvalidInput)
	}
	colours := []struct{ label, value string }{
		{"primary colour", s.PrimaryColor},
		{"secondary colour", s.SecondaryColor},
		{"background colour", s.BackgroundColor},
		{"text colour", s.TextColor},
	}
	for _, c := range colours {
		if !hexColour.MatchString(c.value) {
			return fmt.Errorf("%s %q is not a hex colour: %w", c.label, c.value, ErrInvalidInput)
		}
	}
	return nil
}

// BuilderConfig holds the configurable defaults of a builder session.
type BuilderConfig struct {
	// DefaultZoom is the initial zoom level, clamped to [MinZoom, MaxZoom].
	DefaultZoom int

	// DefaultDevice is the initial preview device.
	DefaultDevice DeviceMode

	// HistoryLimit caps the number of snapshots kept. Zero means unbounded.
	HistoryLimit int
}

// DefaultBuilderConfig returns the default builder configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		DefaultZoom:   DefaultZoom,
		DefaultDevice: DeviceDesktop,
		HistoryLimit:  0,
	}
}
