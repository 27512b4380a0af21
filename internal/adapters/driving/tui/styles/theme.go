// Package styles holds the builder's colour theme and lipgloss styles.
//
// The accent colours follow the site branding being edited, so the palette,
// selection highlight and canvas frame preview the site's primary and
// secondary colours. Everything else comes from a fixed dark base.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// Theme is the set of colours styles are built from.
type Theme struct {
	// Brand accents.
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Base.
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color

	// Feedback.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// statusBackground sits one shade below Background.
const statusBackground = lipgloss.Color("#181825")

// DefaultTheme uses the default site branding on the dark base.
func DefaultTheme() *Theme {
	site := domain.DefaultSiteSettings()
	return &Theme{
		Primary:    lipgloss.Color(site.PrimaryColor),
		Secondary:  lipgloss.Color(site.SecondaryColor),
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Border:     lipgloss.Color("#45475A"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
	}
}

// ThemeFromSite swaps the accents for the site's brand colours. Empty
// colours keep the defaults.
func ThemeFromSite(site *domain.SiteSettings) *Theme {
	theme := DefaultTheme()
	if site == nil {
		return theme
	}
	if site.PrimaryColor != "" {
		theme.Primary = lipgloss.Color(site.PrimaryColor)
	}
	if site.SecondaryColor != "" {
		theme.Secondary = lipgloss.Color(site.SecondaryColor)
	}
	return theme
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	// Text.
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	// Layer rows.
	Selected lipgloss.Style
	Hovered  lipgloss.Style
	Hidden   lipgloss.Style

	// Status messages.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Frames.
	Canvas     lipgloss.Style
	Panel      lipgloss.Style
	Border     lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted),

		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Hovered:  fg(theme.Secondary).Underline(true),
		Hidden:   fg(theme.Muted).Faint(true).Strikethrough(true),

		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Error),

		Canvas: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
		Panel:      rounded.Padding(0, 1),
		Border:     rounded,
		InputField: rounded.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(statusBackground).Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the colours the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
