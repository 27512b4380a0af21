package domain

import "errors"

// Domain errors represent rejected builder operations.
// A rejected operation never changes the document, the history or the trackers.
var (
	// ErrNotFound indicates a referenced component does not exist in the document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTemplate indicates a component was requested with an unknown type.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrInvalidIndex indicates a position outside the document bounds.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrLocked indicates a structural operation targeted a locked component.
	ErrLocked = errors.New("component is locked")

	// ErrInvalidParent indicates the requested parent cannot hold children.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// History and clipboard outcomes.

	// ErrClipboardEmpty indicates paste was requested with nothing copied.
	ErrClipboardEmpty = errors.New("clipboard is empty")

	// ErrNothingToUndo indicates the history is already at its oldest snapshot.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the history is already at its newest snapshot.
	ErrNothingToRedo = errors.New("nothing to redo")
)
