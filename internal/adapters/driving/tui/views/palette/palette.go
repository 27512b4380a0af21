// Package palette provides the template picker used to add components.
package palette

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/icons"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// View lists every template, grouped by category.
type View struct {
	styles    *styles.Styles
	templates []domain.Template
	selected  int

	parentID   string
	parentName string

	width  int
	height int
	ready  bool
}

// NewView creates a new palette view.
func NewView(s *styles.Styles, registry driving.TemplateRegistry) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	var list []domain.Template
	if registry != nil {
		list = registry.List()
	}

	return &View{
		styles:    s,
		templates: list,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the palette.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.templates)-1 {
				v.selected++
			}
		case "enter":
			if len(v.templates) == 0 {
				return v, nil
			}
			chosen := messages.TemplateChosen{Type: v.templates[v.selected].Type, ParentID: v.parentID}
			return v, func() tea.Msg { return chosen }
		case "esc", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewCanvas}
			}
		}
	}
	return v, nil
}

// View renders the palette.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	title := "Add component"
	if v.parentID != "" {
		title = fmt.Sprintf("Add component inside %s", v.parentName)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	category := ""
	for i, tmpl := range v.templates {
		if tmpl.Category != category {
			category = tmpl.Category
			b.WriteString("\n")
			b.WriteString(v.styles.Subtitle.Render(strings.ToUpper(category)))
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s %-12s", icons.Glyph(tmpl.Icon), tmpl.DisplayName)
		if tmpl.Type.AcceptsChildren() {
			line += v.styles.Muted.Render(" container")
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] add  [esc] cancel"))
	return b.String()
}

// SetParent sets the container new components are added to ("" for root).
func (v *View) SetParent(id, name string) {
	v.parentID = id
	v.parentName = name
}

// Reset moves the cursor back to the first template.
func (v *View) Reset() {
	v.selected = 0
	v.parentID = ""
	v.parentName = ""
}

// Selected returns the highlighted template.
func (v *View) Selected() (domain.Template, bool) {
	if v.selected < 0 || v.selected >= len(v.templates) {
		return domain.Template{}, false
	}
	return v.templates[v.selected], true
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
