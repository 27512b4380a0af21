// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up moves the cursor to the previous component.
	Up key.Binding

	// Down moves the cursor to the next component.
	Down key.Binding

	// PageUp scrolls the inspector up.
	PageUp key.Binding

	// PageDown scrolls the inspector down.
	PageDown key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Add opens the palette to add a root-level component.
	Add key.Binding

	// AddChild opens the palette to add inside the selected container.
	AddChild key.Binding

	// Remove deletes the selected component and its descendants.
	Remove key.Binding

	// Duplicate clones the selected component.
	Duplicate key.Binding

	// Copy puts the selected component on the clipboard.
	Copy key.Binding

	// Paste inserts the clipboard.
	Paste key.Binding

	// MoveUp moves the selected component one position earlier.
	MoveUp key.Binding

	// MoveDown moves the selected component one position later.
	MoveDown key.Binding

	// Rename edits the selected component's name.
	Rename key.Binding

	// Edit edits the selected component's primary text.
	Edit key.Binding

	// Lock toggles the lock flag.
	Lock key.Binding

	// Hide toggles the hidden flag.
	Hide key.Binding

	// Clear removes every component.
	Clear key.Binding

	// Undo steps back in history.
	Undo key.Binding

	// Redo steps forward in history.
	Redo key.Binding

	// ZoomIn increases the canvas zoom.
	ZoomIn key.Binding

	// ZoomOut decreases the canvas zoom.
	ZoomOut key.Binding

	// Device cycles the preview device.
	Device key.Binding

	// Site opens the site settings.
	Site key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll inspector up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll inspector down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		AddChild: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add inside"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "duplicate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p", "ctrl+v"),
			key.WithHelp("p", "paste"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit text"),
		),
		Lock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear page"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("U", "ctrl+y"),
			key.WithHelp("U", "redo"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Device: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "device"),
		),
		Site: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "site"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Undo, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Select, k.Back},
		{k.Add, k.AddChild, k.Remove, k.Duplicate, k.Clear},
		{k.Copy, k.Paste, k.MoveUp, k.MoveDown},
		{k.Rename, k.Edit, k.Lock, k.Hide},
		{k.Undo, k.Redo, k.ZoomIn, k.ZoomOut, k.Device},
		{k.Site, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
