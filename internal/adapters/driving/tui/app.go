package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/views/canvas"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/views/palette"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/views/site"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by every view and re-themed in place when the
	// site branding changes.
	styles *styles.Styles
	keymap *keymap.KeyMap

	statusBar   *status.Bar
	canvasView  *canvas.View
	paletteView *palette.View
	siteView    *site.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings, err := ports.Site.Get()
	if err != nil {
		settings = nil
	}

	s := styles.NewStyles(styles.ThemeFromSite(settings))
	km := keymap.DefaultKeyMap()
	canvasView := canvas.NewView(s, km, ports.Builder, ports.Templates)
	canvasView.SetSite(settings)

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		statusBar:   status.NewBar(s, km),
		canvasView:  canvasView,
		paletteView: palette.NewView(s, ports.Templates),
		siteView:    site.NewView(s, ports.Site),
		currentView: messages.ViewCanvas,
	}
	app.syncStatus()
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pagecraft - Page Builder"),
		a.canvasView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewCanvas:
			a.canvasView, cmd = a.canvasView.Update(msg)
			a.syncStatus()
		case messages.ViewPalette:
			a.paletteView, cmd = a.paletteView.Update(msg)
		case messages.ViewSite:
			a.siteView, cmd = a.siteView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) ||
				msg.String() == "q" {
				a.showCanvas()
			}
		}
		return a, cmd

	case tea.MouseMsg:
		if a.currentView == messages.ViewCanvas {
			a.canvasView, cmd = a.canvasView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		switch msg.View {
		case messages.ViewCanvas:
			a.showCanvas()
			return a, nil
		case messages.ViewSite:
			a.currentView = messages.ViewSite
			a.siteView.Reset()
			return a, a.siteView.Init()
		case messages.ViewPalette:
			a.paletteView.Reset()
			a.currentView = messages.ViewPalette
		case messages.ViewHelp:
			a.currentView = messages.ViewHelp
			a.statusBar.SetState(status.StateHelp)
		}
		return a, nil

	case messages.AddRequested:
		a.paletteView.Reset()
		if msg.ParentID != "" {
			name := msg.ParentID
			if parent, err := a.ports.Builder.Component(msg.ParentID); err == nil {
				name = parent.Name
			}
			a.paletteView.SetParent(msg.ParentID, name)
		}
		a.currentView = messages.ViewPalette
		return a, nil

	case messages.TemplateChosen:
		id, err := a.ports.Builder.Add(msg.Type, msg.ParentID)
		a.showCanvas()
		if err != nil {
			a.setError(err)
			return a, nil
		}
		name := id
		if c, err := a.ports.Builder.Component(id); err == nil {
			name = c.Name
		}
		a.setStatus("Added " + name)
		return a, nil

	case messages.DocumentChanged:
		a.setStatus(msg.Status)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.ClipboardMirrored:
		if msg.Err != nil {
			a.setStatus("Copied (system clipboard unavailable)")
		}
		return a, nil

	case messages.SiteLoaded:
		a.siteView, cmd = a.siteView.Update(msg)
		if msg.Err == nil {
			a.applySite(msg.Settings)
		}
		return a, cmd

	case messages.SiteSaved:
		a.siteView, cmd = a.siteView.Update(msg)
		if msg.Err == nil {
			a.applySite(msg.Settings)
		}
		return a, cmd

	case messages.ConfigReloaded:
		a.setStatus("Config reloaded")
		return a, a.siteView.Load()

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) showCanvas() {
	a.currentView = messages.ViewCanvas
	a.canvasView.Refresh()
	if a.statusBar.State() == status.StateHelp {
		a.statusBar.Clear()
	}
	a.syncStatus()
}

// applySite re-themes every view with the site's brand colours.
func (a *App) applySite(settings *domain.SiteSettings) {
	if settings == nil {
		return
	}
	*a.styles = *styles.NewStyles(styles.ThemeFromSite(settings))
	a.canvasView.SetSite(settings)
}

func (a *App) setStatus(message string) {
	a.err = nil
	a.statusBar.SetState(status.StateReady)
	a.statusBar.SetMessage(message)
	a.syncStatus()
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
	a.syncStatus()
}

func (a *App) syncStatus() {
	snap := a.ports.Builder.Snapshot()
	a.statusBar.SetSession(snap.Viewport, snap.History, snap.Document.Len())
	if a.canvasView.Editing() {
		a.statusBar.SetState(status.StateEditing)
	} else if a.statusBar.State() == status.StateEditing {
		a.statusBar.SetState(status.StateReady)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewPalette:
		body = a.paletteView.View()
	case messages.ViewSite:
		body = a.siteView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.canvasView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders every keybinding, one group per block.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")
	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back to canvas"))
	return b.String()
}

// Run starts the TUI application. When a config watcher is available,
// external edits to the config file reload the site branding.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(a.ctx))

	if a.ports.ConfigWatcher != nil {
		ctx, cancel := context.WithCancel(a.ctx)
		defer cancel()
		go watchConfig(ctx, a.ports.ConfigWatcher, p.Send)
	}

	_, err := p.Run()
	return err
}

// watchConfig forwards config reloads to the program until ctx is done. A
// watcher that cannot start is logged and shown in the status bar, since
// branding edits on disk will no longer be picked up.
func watchConfig(ctx context.Context, watcher driven.ConfigWatcher, send func(tea.Msg)) {
	err := watcher.Watch(ctx, func() {
		send(messages.ConfigReloaded{})
	})
	if err == nil || ctx.Err() != nil {
		return
	}
	logger.Warn("tui: config watcher stopped: %v", err)
	send(messages.ErrorOccurred{Err: fmt.Errorf("config reload disabled: %w", err)})
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Leave a line for the status bar.
	a.canvasView.SetDimensions(width, height-1)
	a.paletteView.SetDimensions(width, height-1)
	a.siteView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
