// Package status renders the bottom line of the builder: the session
// summary or the latest outcome on the left, key hints on the right.
//
// The bar is passive. The app pushes state into it after every update.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateError   State = "error"
	StateHelp    State = "help"
)

// Bar displays the builder session state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	viewport domain.Viewport
	history  domain.HistoryState
	count    int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		state:    StateReady,
		viewport: domain.DefaultViewport(),
		history:  domain.HistoryState{Length: 1},
		width:    80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	session := fmt.Sprintf("%d%% %s | %d/%d | %d components",
		s.viewport.Zoom, s.viewport.Device, s.history.Index+1, s.history.Length, s.count)

	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateEditing:
		return s.styles.Normal.Render("Editing") + "  " + s.styles.Muted.Render(session)
	case StateReady:
		if s.message != "" {
			return s.styles.Success.Render(s.message) + "  " + s.styles.Muted.Render(session)
		}
	}
	return s.styles.Muted.Render(session)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateEditing {
		bindings = []key.Binding{s.keymap.Select, s.keymap.Back}
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetSession records the viewport, history position and component count.
func (s *Bar) SetSession(viewport domain.Viewport, history domain.HistoryState, count int) {
	s.viewport = viewport
	s.history = history
	s.count = count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear drops the message and returns to StateReady.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
