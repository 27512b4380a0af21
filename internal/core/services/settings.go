package services

import (
	"fmt"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// Ensure SiteSettingsService implements the interface.
var _ driving.SiteSettingsService = (*SiteSettingsService)(nil)

// Config keys for settings storage.
const (
	keySiteName            = "site.name"
	keySiteTagline         = "site.tagline"
	keySiteLogoURL         = "site.logo_url"
	keySitePrimaryColor    = "site.primary_color"
	keySiteSecondaryColor  = "site.secondary_color"
	keySiteBackgroundColor = "site.background_color"
	keySiteTextColor       = "site.text_color"
	keySiteHeadingFont     = "site.heading_font"
	keySiteBodyFont        = "site.body_font"
	keySiteShowHeader      = "site.show_header"
	keySiteShowFooter      = "site.show_footer"

	keyBuilderDefaultZoom   = "builder.default_zoom"
	keyBuilderDefaultDevice = "builder.default_device"
	keyBuilderHistoryLimit  = "builder.history_limit"
)

// SiteSettingsService manages site-wide branding settings.
type SiteSettingsService struct {
	configStore driven.ConfigStore
}

// NewSiteSettingsService creates a new site settings service.
func NewSiteSettingsService(configStore driven.ConfigStore) *SiteSettingsService {
	return &SiteSettingsService{configStore: configStore}
}

// Get retrieves the current site settings, filling defaults for unset keys.
func (s *SiteSettingsService) Get() (*domain.SiteSettings, error) {
	if s.configStore == nil {
		return nil, fmt.Errorf("config store: %w", domain.ErrInvalidInput)
	}
	defaults := domain.DefaultSiteSettings()

	settings := &domain.SiteSettings{
		Name:            s.getString(keySiteName, defaults.Name),
		Tagline:         s.configStore.GetString(keySiteTagline), // No default - empty hides the tagline
		LogoURL:         s.configStore.GetString(keySiteLogoURL),
		PrimaryColor:    s.getString(keySitePrimaryColor, defaults.PrimaryColor),
		SecondaryColor:  s.getString(keySiteSecondaryColor, defaults.SecondaryColor),
		BackgroundColor: s.getString(keySiteBackgroundColor, defaults.BackgroundColor),
		TextColor:       s.getString(keySiteTextColor, defaults.TextColor),
		HeadingFont:     s.getString(keySiteHeadingFont, defaults.HeadingFont),
		BodyFont:        s.getString(keySiteBodyFont, defaults.BodyFont),
		ShowHeader:      s.getBool(keySiteShowHeader, defaults.ShowHeader),
		ShowFooter:      s.getBool(keySiteShowFooter, defaults.ShowFooter),
	}

	return settings, nil
}

// Save validates and persists site settings.
func (s *SiteSettingsService) Save(settings *domain.SiteSettings) error {
	if s.configStore == nil {
		return fmt.Errorf("config store: %w", domain.ErrInvalidInput)
	}
	if settings == nil {
		return fmt.Errorf("site settings: %w", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySiteName, settings.Name},
		{keySiteTagline, settings.Tagline},
		{keySiteLogoURL, settings.LogoURL},
		{keySitePrimaryColor, settings.PrimaryColor},
		{keySiteSecondaryColor, settings.SecondaryColor},
		{keySiteBackgroundColor, settings.BackgroundColor},
		{keySiteTextColor, settings.TextColor},
		{keySiteHeadingFont, settings.HeadingFont},
		{keySiteBodyFont, settings.BodyFont},
		{keySiteShowHeader, settings.ShowHeader},
		{keySiteShowFooter, settings.ShowFooter},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Update applies fn to the current settings and saves the result.
// Nothing is persisted if the modified settings fail validation.
func (s *SiteSettingsService) Update(fn func(*domain.SiteSettings)) (*domain.SiteSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	fn(settings)

	if err := s.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reset restores the default settings.
func (s *SiteSettingsService) Reset() error {
	defaults := domain.DefaultSiteSettings()
	return s.Save(&defaults)
}

// GetDefaults returns default settings.
func (s *SiteSettingsService) GetDefaults() domain.SiteSettings {
	return domain.DefaultSiteSettings()
}

// getString returns the config value or the default if empty.
func (s *SiteSettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getBool returns the config value or the default if unset.
func (s *SiteSettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// LoadBuilderConfig reads builder defaults from the config store.
// Missing or invalid values fall back to domain.DefaultBuilderConfig.
func LoadBuilderConfig(configStore driven.ConfigStore) domain.BuilderConfig {
	cfg := domain.DefaultBuilderConfig()
	if configStore == nil {
		return cfg
	}

	if zoom := configStore.GetInt(keyBuilderDefaultZoom); zoom != 0 {
		cfg.DefaultZoom = domain.ClampZoom(zoom)
	}
	if device := domain.DeviceMode(configStore.GetString(keyBuilderDefaultDevice)); device.IsValid() {
		cfg.DefaultDevice = device
	}
	if limit := configStore.GetInt(keyBuilderHistoryLimit); limit > 0 {
		cfg.HistoryLimit = limit
	}

	return cfg
}
