package driving

import "github.com/custodia-labs/pagecraft/internal/core/domain"

// SiteSettingsService manages site-wide branding settings.
// Changes are applied immediately and never recorded in the builder history.
type SiteSettingsService interface {
	// Get retrieves the current site settings.
	Get() (*domain.SiteSettings, error)

	// Save validates and persists site settings.
	Save(settings *domain.SiteSettings) error

	// Update applies fn to the current settings and saves the result.
	Update(fn func(*domain.SiteSettings)) (*domain.SiteSettings, error)

	// Reset restores the default settings.
	Reset() error

	// GetDefaults returns default settings.
	GetDefaults() domain.SiteSettings
}
