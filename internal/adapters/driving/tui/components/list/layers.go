// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/icons"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// Row is one line of the layers list.
type Row struct {
	Component domain.Component
	Depth     int
	Icon      string
}

// Layers displays the page components as an indented, navigable tree.
// Rows follow document order so the cursor index equals the component's
// position in the flat list.
type Layers struct {
	rows    []Row
	cursor  int
	hovered string
	styles  *styles.Styles
	width   int
	height  int
	offset  int
}

// NewLayers creates a new layers list component.
func NewLayers(s *styles.Styles) *Layers {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Layers{
		styles: s,
		width:  30,
		height: 10,
	}
}

// Init initialises the list.
func (l *Layers) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *Layers) Update(msg tea.Msg) (*Layers, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *Layers) View() string {
	header := l.styles.Subtitle.Render(fmt.Sprintf("Layers (%d)", len(l.rows)))
	if len(l.rows) == 0 {
		return header + "\n\n" + l.styles.Muted.Render("No components")
	}

	lines := make([]string, 0, l.visible()+2)
	lines = append(lines, header, "")

	end := l.offset + l.visible()
	if end > len(l.rows) {
		end = len(l.rows)
	}
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l *Layers) renderRow(index int) string {
	row := l.rows[index]
	c := row.Component

	indicator := "  "
	if index == l.cursor {
		indicator = "> "
	}
	var flags string
	if c.IsLocked {
		flags += " [L]"
	}
	if c.IsHidden {
		flags += " [H]"
	}

	label := fmt.Sprintf("%s%s%s %s%s", indicator, strings.Repeat("  ", row.Depth), row.Icon, c.Name, flags)
	if l.width > 4 {
		label = truncate.StringWithTail(label, uint(l.width), "…")
	}

	switch {
	case index == l.cursor:
		return l.styles.Selected.Render(label)
	case c.ID == l.hovered:
		return l.styles.Hovered.Render(label)
	case c.IsHidden:
		return l.styles.Hidden.Render(label)
	default:
		return l.styles.Normal.Render(label)
	}
}

// visible returns the number of rows that fit below the header.
func (l *Layers) visible() int {
	n := l.height - 2
	if n < 1 {
		n = 1
	}
	return n
}

// SetDocument rebuilds the rows from a document, keeping the cursor on the
// component with id cursorID when it still exists.
func (l *Layers) SetDocument(doc domain.Document, icon func(domain.ComponentType) string, cursorID string) {
	depth := depths(doc)
	l.rows = make([]Row, 0, doc.Len())
	for _, c := range doc.Components {
		glyph := icons.Fallback
		if icon != nil {
			glyph = icon(c.Type)
		}
		l.rows = append(l.rows, Row{Component: c, Depth: depth[c.ID], Icon: glyph})
	}
	if idx := doc.IndexOf(cursorID); idx >= 0 {
		l.cursor = idx
	}
	l.clamp()
}

// depths returns the nesting depth of every component. Parent cycles are
// cut at the first revisit.
func depths(doc domain.Document) map[string]int {
	depth := make(map[string]int, doc.Len())
	var walk func(id string) int
	walk = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		depth[id] = 0
		c, ok := doc.Get(id)
		if !ok || c.IsRoot() {
			return 0
		}
		d := walk(c.Parent()) + 1
		depth[id] = d
		return d
	}
	for _, c := range doc.Components {
		walk(c.ID)
	}
	return depth
}

func (l *Layers) clamp() {
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.visible() {
		l.offset = l.cursor - l.visible() + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Rows returns the current rows.
func (l *Layers) Rows() []Row {
	return l.rows
}

// Cursor returns the cursor index.
func (l *Layers) Cursor() int {
	return l.cursor
}

// SetCursor moves the cursor if index is in range.
func (l *Layers) SetCursor(index int) {
	if index >= 0 && index < len(l.rows) {
		l.cursor = index
		l.clamp()
	}
}

// Current returns the component under the cursor.
func (l *Layers) Current() (domain.Component, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return domain.Component{}, false
	}
	return l.rows[l.cursor].Component, true
}

// SetHovered marks the row of the hovered component.
func (l *Layers) SetHovered(id string) {
	l.hovered = id
}

// Hovered returns the ID of the hovered component.
func (l *Layers) Hovered() string {
	return l.hovered
}

// RowAt returns the component rendered on line y of the list (0 is the
// header), for mouse hit-testing.
func (l *Layers) RowAt(y int) (domain.Component, bool) {
	index := y - 2 + l.offset
	if y < 2 || index < 0 || index >= len(l.rows) || index >= l.offset+l.visible() {
		return domain.Component{}, false
	}
	return l.rows[index].Component, true
}

// MoveUp moves the cursor up.
func (l *Layers) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.clamp()
	}
}

// MoveDown moves the cursor down.
func (l *Layers) MoveDown() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
		l.clamp()
	}
}

// SetDimensions sets the component dimensions.
func (l *Layers) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.clamp()
}

// Count returns the number of rows.
func (l *Layers) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *Layers) IsEmpty() bool {
	return len(l.rows) == 0
}
