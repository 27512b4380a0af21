package services

import (
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// History is a linear snapshot history with a current index.
//
// Invariant: 0 <= index < len(snapshots). Snapshots are stored as deep
// copies, so no caller can reach into a recorded state.
type History struct {
	snapshots []domain.Document
	index     int
	limit     int
}

// NewHistory creates a history holding a single empty document.
// A positive limit caps the number of retained snapshots.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{
		snapshots: []domain.Document{domain.NewDocument()},
		index:     0,
		limit:     limit,
	}
}

// Commit discards every snapshot after the current one, appends doc and
// makes it current. It is the only operation that truncates the redo branch.
func (h *History) Commit(doc domain.Document) {
	h.snapshots = append(h.snapshots[:h.index+1], doc.Clone())
	h.index = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([]domain.Document(nil), h.snapshots[drop:]...)
		h.index -= drop
	}
}

// Amend replaces the current snapshot without moving the index.
func (h *History) Amend(doc domain.Document) {
	h.snapshots[h.index] = doc.Clone()
}

// Undo moves to the previous snapshot.
func (h *History) Undo() error {
	if h.index == 0 {
		return domain.ErrNothingToUndo
	}
	h.index--
	return nil
}

// Redo moves to the next snapshot.
func (h *History) Redo() error {
	if h.index >= len(h.snapshots)-1 {
		return domain.ErrNothingToRedo
	}
	h.index++
	return nil
}

// Current returns a copy of the current snapshot.
func (h *History) Current() domain.Document {
	return h.snapshots[h.index].Clone()
}

// peek returns the current snapshot without copying (caller must not mutate).
func (h *History) peek() domain.Document {
	return h.snapshots[h.index]
}

// State returns the current length and index.
func (h *History) State() domain.HistoryState {
	return domain.HistoryState{Length: len(h.snapshots), Index: h.index}
}

// CanUndo returns true if Undo would succeed.
func (h *History) CanUndo() bool {
	return h.State().CanUndo()
}

// CanRedo returns true if Redo would succeed.
func (h *History) CanRedo() bool {
	return h.State().CanRedo()
}
