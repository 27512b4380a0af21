package driving

import "github.com/custodia-labs/pagecraft/internal/core/domain"

// BuilderService is one page-builder editing session.
//
// Structural commands (Add, Remove, Duplicate, PasteFromClipboard, Reorder,
// Move, Clear) record a history snapshot. Cosmetic commands (PatchStyles,
// PatchContent, Rename, ToggleLock, ToggleVisibility) edit the current
// snapshot in place. Selection, hover, clipboard and viewport are never
// recorded. A rejected command returns an error and changes nothing.
type BuilderService interface {
	// Add creates a component from the template of the given type and selects it.
	// parentID may be empty for a root-level component.
	Add(componentType domain.ComponentType, parentID string) (string, error)

	// Remove deletes a component and all of its descendants.
	Remove(id string) error

	// Duplicate clones a component to the end of the list and selects the copy.
	Duplicate(id string) (string, error)

	// CopyToClipboard stores a value copy of a component.
	CopyToClipboard(id string) error

	// PasteFromClipboard inserts a clone of the clipboard at the end and selects it.
	// Returns domain.ErrClipboardEmpty when nothing has been copied.
	PasteFromClipboard() (string, error)

	// Reorder moves the component at from to position to.
	Reorder(from, to int) error

	// Move moves the component with the given id to position to.
	Move(id string, to int) error

	// PatchStyles shallow-merges styles into a component.
	PatchStyles(id string, patch domain.Styles) error

	// PatchContent shallow-merges content into a component.
	PatchContent(id string, patch domain.Content) error

	// Rename sets the display name of a component.
	Rename(id, name string) error

	// ToggleLock flips the lock flag and returns the new value.
	ToggleLock(id string) (bool, error)

	// ToggleVisibility flips the hidden flag and returns the new value.
	ToggleVisibility(id string) (bool, error)

	// Clear removes every component.
	Clear() error

	// Undo steps back one snapshot.
	Undo() error

	// Redo steps forward one snapshot.
	Redo() error

	// Select marks a component as selected. An empty id clears the selection.
	Select(id string) error

	// Hover marks a component as hovered. An empty id clears the hover.
	Hover(id string) error

	// SetZoom clamps and stores the zoom level, returning the stored value.
	SetZoom(zoom int) int

	// SetDevice changes the preview device.
	SetDevice(device domain.DeviceMode) error

	// Components returns the root-level components in order.
	Components() []domain.Component

	// Document returns a copy of the full flat document.
	Document() domain.Document

	// Component returns a copy of a single component.
	Component(id string) (domain.Component, error)

	// Selected returns the selected component id, or "".
	Selected() string

	// Hovered returns the hovered component id, or "".
	Hovered() string

	// HasClipboard reports whether paste is available.
	HasClipboard() bool

	// CanUndo reports whether Undo would succeed.
	CanUndo() bool

	// CanRedo reports whether Redo would succeed.
	CanRedo() bool

	// History returns the current history position.
	History() domain.HistoryState

	// Viewport returns the current zoom and device mode.
	Viewport() domain.Viewport

	// Snapshot returns the document and all trackers as of one instant.
	Snapshot() domain.Session
}
