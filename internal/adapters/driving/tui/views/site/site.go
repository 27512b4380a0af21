// Package site provides the site branding view for the TUI.
package site

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

var errNoService = errors.New("site settings service not available")

// field is one editable site setting.
type field struct {
	label  string
	get    func(*domain.SiteSettings) string
	set    func(*domain.SiteSettings, string)
	toggle func(*domain.SiteSettings)
}

func text(label string, ptr func(*domain.SiteSettings) *string) field {
	return field{
		label: label,
		get:   func(s *domain.SiteSettings) string { return *ptr(s) },
		set:   func(s *domain.SiteSettings, v string) { *ptr(s) = v },
	}
}

func flag(label string, ptr func(*domain.SiteSettings) *bool) field {
	return field{
		label: label,
		get: func(s *domain.SiteSettings) string {
			if *ptr(s) {
				return "yes"
			}
			return "no"
		},
		toggle: func(s *domain.SiteSettings) { *ptr(s) = !*ptr(s) },
	}
}

var fields = []field{
	text("Name", func(s *domain.SiteSettings) *string { return &s.Name }),
	text("Tagline", func(s *domain.SiteSettings) *string { return &s.Tagline }),
	text("Logo URL", func(s *domain.SiteSettings) *string { return &s.LogoURL }),
	text("Primary colour", func(s *domain.SiteSettings) *string { return &s.PrimaryColor }),
	text("Secondary colour", func(s *domain.SiteSettings) *string { return &s.SecondaryColor }),
	text("Background colour", func(s *domain.SiteSettings) *string { return &s.BackgroundColor }),
	text("Text colour", func(s *domain.SiteSettings) *string { return &s.TextColor }),
	text("Heading font", func(s *domain.SiteSettings) *string { return &s.HeadingFont }),
	text("Body font", func(s *domain.SiteSettings) *string { return &s.BodyFont }),
	flag("Show header", func(s *domain.SiteSettings) *bool { return &s.ShowHeader }),
	flag("Show footer", func(s *domain.SiteSettings) *bool { return &s.ShowFooter }),
}

// View edits site-wide branding. Changes are saved immediately and are not
// part of the page history.
type View struct {
	styles  *styles.Styles
	service driving.SiteSettingsService

	settings *domain.SiteSettings
	err      error
	saved    bool

	selected int
	editing  bool
	input    *input.Field

	width  int
	height int
	ready  bool
}

// NewView creates a new site settings view.
func NewView(s *styles.Styles, service driving.SiteSettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		service: service,
		input:   input.NewField(s, "", ""),
		width:   80,
		height:  24,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that loads the current settings.
func (v *View) Load() tea.Cmd {
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.SiteLoaded{Err: errNoService}
		}
		settings, err := service.Get()
		return messages.SiteLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the site view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SiteLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SiteSaved:
		v.err = msg.Err
		v.saved = msg.Err == nil
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v, v.handleEditKeys(msg)
		}
		return v, v.handleKeys(msg)
	}
	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewCanvas} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case "enter", " ":
		if v.settings == nil {
			return nil
		}
		f := fields[v.selected]
		if f.toggle != nil {
			return v.save(f.toggle)
		}
		v.editing = true
		v.input.SetLabel(f.label)
		v.input.SetValue(f.get(v.settings))
		return v.input.Focus()
	case "R":
		return v.reset()
	}
	return nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEditing()
		return nil
	case tea.KeyEnter:
		value := v.input.Value()
		set := fields[v.selected].set
		v.stopEditing()
		return v.save(func(s *domain.SiteSettings) { set(s, value) })
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.Reset()
}

func (v *View) save(fn func(*domain.SiteSettings)) tea.Cmd {
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.SiteSaved{Err: errNoService}
		}
		settings, err := service.Update(fn)
		return messages.SiteSaved{Settings: settings, Err: err}
	}
}

func (v *View) reset() tea.Cmd {
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.SiteSaved{Err: errNoService}
		}
		if err := service.Reset(); err != nil {
			return messages.SiteSaved{Err: err}
		}
		settings, err := service.Get()
		return messages.SiteSaved{Settings: settings, Err: err}
	}
}

// View renders the site view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Site Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading..."))
		}
		return b.String()
	}

	for i, f := range fields {
		line := fmt.Sprintf("%-18s %s", f.label, f.get(v.settings))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.editing:
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] edit  [R] reset  [esc] back"))
	default:
		if v.saved {
			b.WriteString(v.styles.Success.Render("Saved"))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Help.Render("[enter] edit  [R] reset  [esc] back"))
	}
	return b.String()
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.selected = 0
	v.saved = false
	v.err = nil
	v.stopEditing()
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.SiteSettings {
	return v.settings
}

// Editing reports whether a field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}
