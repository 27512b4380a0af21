package domain

// HistoryState describes the position within the undo/redo history.
type HistoryState struct {
	// Length is the number of snapshots recorded.
	Length int `json:"length"`

	// Index is the position of the current snapshot.
	Index int `json:"index"`
}

// CanUndo returns true if an older snapshot exists.
func (h HistoryState) CanUndo() bool {
	return h.Index > 0
}

// CanRedo returns true if a newer snapshot exists.
func (h HistoryState) CanRedo() bool {
	return h.Index < h.Length-1
}
