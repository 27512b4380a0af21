// Package canvas provides the main page-builder view: the layers list, the
// page preview and the inspector for the selected component.
package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/icons"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/preview"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// Zoom step for the zoom keys, in percent.
const zoomStep = 10

// Pane widths, excluding borders.
const (
	layersWidth    = 30
	inspectorWidth = 34
	paneChrome     = 4 // border and padding of one panel
)

// errNoSelection is reported when a command needs a component and the page is empty.
var errNoSelection = errors.New("no component selected")

type mode int

const (
	modeBrowse mode = iota
	modeRename
	modeEditText
)

// View is the page-builder canvas.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	builder   driving.BuilderService
	templates driving.TemplateRegistry

	layers    *list.Layers
	inspector viewport.Model
	field     *input.Field
	mode      mode
	editKey   string

	site           *domain.SiteSettings
	writeClipboard func(string) error
	err            error

	width  int
	height int
	ready  bool
}

// NewView creates a new canvas view over a builder session.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	builder driving.BuilderService,
	templates driving.TemplateRegistry,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:         s,
		keymap:         km,
		builder:        builder,
		templates:      templates,
		layers:         list.NewLayers(s),
		inspector:      viewport.New(inspectorWidth, 20),
		field:          input.NewField(s, "Name", ""),
		writeClipboard: clipboard.WriteAll,
		width:          120,
		height:         30,
	}
	v.Refresh()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Update handles messages for the canvas.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		switch v.mode {
		case modeRename, modeEditText:
			return v, v.handleEditKeys(msg)
		case modeBrowse:
			return v, v.handleBrowseKeys(msg)
		}
	}
	return v, nil
}

//nolint:gocyclo // one case per builder command
func (v *View) handleBrowseKeys(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	km := v.keymap

	switch {
	case keymap.Matches(k, km.Up):
		v.layers.MoveUp()
		return v.syncSelection()
	case keymap.Matches(k, km.Down):
		v.layers.MoveDown()
		return v.syncSelection()
	case keymap.Matches(k, km.Select):
		return v.syncSelection()
	case keymap.Matches(k, km.Back):
		return v.apply("Selection cleared", v.builder.Select(""))
	case keymap.Matches(k, km.PageUp):
		v.inspector.LineUp(v.inspector.Height / 2)
		return nil
	case keymap.Matches(k, km.PageDown):
		v.inspector.LineDown(v.inspector.Height / 2)
		return nil

	case keymap.Matches(k, km.Add):
		return emit(messages.AddRequested{})
	case keymap.Matches(k, km.AddChild):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			if !c.Type.AcceptsChildren() {
				return v.fail(fmt.Errorf("%s cannot hold children: %w", c.Type, domain.ErrInvalidParent))
			}
			return emit(messages.AddRequested{ParentID: c.ID})
		})
	case keymap.Matches(k, km.Remove):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			return v.apply("Removed "+c.Name, v.builder.Remove(c.ID))
		})
	case keymap.Matches(k, km.Duplicate):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			_, err := v.builder.Duplicate(c.ID)
			return v.apply("Duplicated "+c.Name, err)
		})
	case keymap.Matches(k, km.Copy):
		return v.withCurrent(v.copy)
	case keymap.Matches(k, km.Paste):
		_, err := v.builder.PasteFromClipboard()
		return v.apply("Pasted", err)
	case keymap.Matches(k, km.MoveUp):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			return v.apply("Moved "+c.Name, v.builder.Move(c.ID, c.Order-1))
		})
	case keymap.Matches(k, km.MoveDown):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			return v.apply("Moved "+c.Name, v.builder.Move(c.ID, c.Order+1))
		})
	case keymap.Matches(k, km.Rename):
		return v.withCurrent(v.startRename)
	case keymap.Matches(k, km.Edit):
		return v.withCurrent(v.startEditText)
	case keymap.Matches(k, km.Lock):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			locked, err := v.builder.ToggleLock(c.ID)
			return v.apply(flagStatus(c.Name, "locked", "unlocked", locked), err)
		})
	case keymap.Matches(k, km.Hide):
		return v.withCurrent(func(c domain.Component) tea.Cmd {
			hidden, err := v.builder.ToggleVisibility(c.ID)
			return v.apply(flagStatus(c.Name, "hidden", "shown", hidden), err)
		})
	case keymap.Matches(k, km.Clear):
		return v.apply("Page cleared", v.builder.Clear())
	case keymap.Matches(k, km.Undo):
		return v.apply("Undone", v.builder.Undo())
	case keymap.Matches(k, km.Redo):
		return v.apply("Redone", v.builder.Redo())

	case keymap.Matches(k, km.ZoomIn):
		zoom := v.builder.SetZoom(v.builder.Viewport().Zoom + zoomStep)
		return v.apply(fmt.Sprintf("Zoom %d%%", zoom), nil)
	case keymap.Matches(k, km.ZoomOut):
		zoom := v.builder.SetZoom(v.builder.Viewport().Zoom - zoomStep)
		return v.apply(fmt.Sprintf("Zoom %d%%", zoom), nil)
	case keymap.Matches(k, km.Device):
		next := nextDevice(v.builder.Viewport().Device)
		return v.apply(next.Description(), v.builder.SetDevice(next))

	case keymap.Matches(k, km.Site):
		return emit(messages.ViewChanged{View: messages.ViewSite})
	case keymap.Matches(k, km.Help):
		return emit(messages.ViewChanged{View: messages.ViewHelp})
	case keymap.Matches(k, km.Quit):
		return emit(messages.Quit{})
	}
	return nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEditing()
		return nil
	case tea.KeyEnter:
		c, ok := v.layers.Current()
		value := v.field.Value()
		editing := v.mode
		key := v.editKey
		v.stopEditing()
		if !ok {
			return v.fail(errNoSelection)
		}
		if editing == modeRename {
			return v.apply("Renamed to "+value, v.builder.Rename(c.ID, value))
		}
		return v.apply("Updated "+key, v.builder.PatchContent(c.ID, domain.Content{key: value}))
	default:
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return cmd
	}
}

func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.X > layersWidth+paneChrome {
		if msg.Action == tea.MouseActionMotion && v.builder.Hovered() != "" {
			return v.hover("")
		}
		return nil
	}
	// The list starts below the title line and the panel border.
	c, onRow := v.layers.RowAt(msg.Y - 2)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && onRow:
		v.layers.SetCursor(c.Order)
		return v.syncSelection()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		v.layers.MoveUp()
		return v.syncSelection()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		v.layers.MoveDown()
		return v.syncSelection()
	case msg.Action == tea.MouseActionMotion:
		id := ""
		if onRow {
			id = c.ID
		}
		if id == v.builder.Hovered() {
			return nil
		}
		return v.hover(id)
	}
	return nil
}

func (v *View) hover(id string) tea.Cmd {
	if err := v.builder.Hover(id); err != nil {
		return v.fail(err)
	}
	v.layers.SetHovered(id)
	return nil
}

// syncSelection makes the builder selection follow the cursor.
func (v *View) syncSelection() tea.Cmd {
	c, ok := v.layers.Current()
	if !ok || c.ID == v.builder.Selected() {
		v.refreshInspector()
		return nil
	}
	if err := v.builder.Select(c.ID); err != nil {
		return v.fail(err)
	}
	v.refreshInspector()
	return nil
}

func (v *View) withCurrent(fn func(domain.Component) tea.Cmd) tea.Cmd {
	c, ok := v.layers.Current()
	if !ok {
		return v.fail(errNoSelection)
	}
	return fn(c)
}

func (v *View) copy(c domain.Component) tea.Cmd {
	if err := v.builder.CopyToClipboard(c.ID); err != nil {
		return v.fail(err)
	}
	status := v.apply("Copied "+c.Name, nil)
	write := v.writeClipboard
	mirror := func() tea.Msg {
		data, err := json.MarshalIndent(c, "", "  ")
		if err == nil {
			err = write(string(data))
		}
		return messages.ClipboardMirrored{ID: c.ID, Err: err}
	}
	return tea.Batch(status, mirror)
}

func (v *View) startRename(c domain.Component) tea.Cmd {
	v.mode = modeRename
	v.field.SetLabel("Name")
	v.field.SetValue(c.Name)
	return v.field.Focus()
}

func (v *View) startEditText(c domain.Component) tea.Cmd {
	key := textKey(c)
	if key == "" {
		return v.fail(fmt.Errorf("%s has no editable text: %w", c.Type, domain.ErrInvalidInput))
	}
	v.mode = modeEditText
	v.editKey = key
	v.field.SetLabel(strings.ToUpper(key[:1]) + key[1:])
	v.field.SetValue(c.Content.GetString(key))
	return v.field.Focus()
}

func (v *View) stopEditing() {
	v.mode = modeBrowse
	v.editKey = ""
	v.field.Blur()
	v.field.Reset()
}

// textKey returns the content key holding the component's visible text.
func textKey(c domain.Component) string {
	for _, key := range []string{domain.ContentText, domain.ContentLabel, domain.ContentHTML, domain.ContentSrc} {
		if _, ok := c.Content[key]; ok {
			return key
		}
	}
	return ""
}

// apply refreshes the view after a builder command and reports the outcome.
func (v *View) apply(status string, err error) tea.Cmd {
	v.Refresh()
	if err != nil {
		return v.fail(err)
	}
	v.err = nil
	return emit(messages.DocumentChanged{Status: status})
}

func (v *View) fail(err error) tea.Cmd {
	v.err = err
	return emit(messages.ErrorOccurred{Err: err})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func flagStatus(name, on, off string, value bool) string {
	if value {
		return name + " " + on
	}
	return name + " " + off
}

func nextDevice(current domain.DeviceMode) domain.DeviceMode {
	modes := domain.AllDeviceModes()
	for i, m := range modes {
		if m == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Refresh reloads the layers and inspector from the builder session. The
// cursor follows the selection, or stays on the same component when
// nothing is selected.
func (v *View) Refresh() {
	if v.builder == nil {
		return
	}
	follow := v.builder.Selected()
	if follow == "" {
		if c, ok := v.layers.Current(); ok {
			follow = c.ID
		}
	}
	v.layers.SetDocument(v.builder.Document(), v.iconFor, follow)
	v.layers.SetHovered(v.builder.Hovered())
	v.refreshInspector()
}

func (v *View) iconFor(t domain.ComponentType) string {
	if v.templates == nil {
		return icons.Fallback
	}
	tmpl, err := v.templates.Lookup(t)
	if err != nil {
		return icons.Fallback
	}
	return icons.Glyph(tmpl.Icon)
}

func (v *View) refreshInspector() {
	c, ok := v.layers.Current()
	if !ok {
		v.inspector.SetContent(v.styles.Muted.Render("Nothing selected"))
		return
	}
	v.inspector.SetContent(v.inspect(c))
	v.inspector.GotoTop()
}

func (v *View) inspect(c domain.Component) string {
	width := v.inspector.Width
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(wordwrap.String(c.Name, width)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", v.iconFor(c.Type), c.Type)
	fmt.Fprintf(&b, "id     %s\n", c.ID)
	fmt.Fprintf(&b, "order  %d\n", c.Order)
	if !c.IsRoot() {
		fmt.Fprintf(&b, "parent %s\n", c.Parent())
	}
	if c.IsLocked {
		b.WriteString(v.styles.Warning.Render("locked") + "\n")
	}
	if c.IsHidden {
		b.WriteString(v.styles.Muted.Render("hidden") + "\n")
	}

	b.WriteString("\n" + v.styles.Subtitle.Render("Content") + "\n")
	b.WriteString(v.attributes(c.Content, width))
	b.WriteString("\n" + v.styles.Subtitle.Render("Styles") + "\n")
	b.WriteString(v.attributes(c.Styles, width))
	return b.String()
}

func (v *View) attributes(attrs map[string]any, width int) string {
	if len(attrs) == 0 {
		return v.styles.Muted.Render("(none)") + "\n"
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		line := fmt.Sprintf("%s: %s", k, formatValue(attrs[k]))
		b.WriteString(wordwrap.String(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	default:
		return fmt.Sprint(t)
	}
}

// View renders the canvas.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := v.styles.Title.Render("pagecraft")
	if v.site != nil {
		title += v.styles.Muted.Render("  " + v.site.Name)
	}

	paneHeight := v.height - 4 // title, status bar and panel borders
	if paneHeight < 3 {
		paneHeight = 3
	}

	layers := v.styles.Panel.Width(layersWidth).Height(paneHeight).Render(v.layers.View())

	available := v.width - layersWidth - inspectorWidth - 3*paneChrome
	vp := v.builder.Viewport()
	pageWidth := preview.Width(vp, available)
	page := v.styles.Canvas.Width(pageWidth + 2).Height(paneHeight).Render(
		preview.Page(v.builder.Document(), v.site, pageWidth, v.styles),
	)

	right := v.inspector.View()
	if v.mode != modeBrowse {
		right = v.field.View() + "\n" + v.styles.Help.Render("enter: save | esc: cancel")
	}
	inspector := v.styles.Panel.Width(inspectorWidth).Height(paneHeight).Render(right)

	//nolint:misspell // lipgloss.Top is the correct constant from the library
	body := lipgloss.JoinHorizontal(lipgloss.Top, layers, page, inspector)
	return title + "\n" + body
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	paneHeight := height - 4
	if paneHeight < 3 {
		paneHeight = 3
	}
	v.layers.SetDimensions(layersWidth, paneHeight)
	v.inspector.Width = inspectorWidth
	v.inspector.Height = paneHeight
	v.field.SetWidth(inspectorWidth)
	v.refreshInspector()
}

// SetSite sets the branding used by the page preview.
func (v *View) SetSite(site *domain.SiteSettings) {
	v.site = site
}

// SetClipboardWriter replaces the system clipboard writer.
func (v *View) SetClipboardWriter(fn func(string) error) {
	v.writeClipboard = fn
}

// Editing reports whether an inline input has focus.
func (v *View) Editing() bool {
	return v.mode != modeBrowse
}

// Cursor returns the index of the component under the cursor.
func (v *View) Cursor() int {
	return v.layers.Cursor()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
