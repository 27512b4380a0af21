package domain

// Session is the state of a builder session at one instant.
type Session struct {
	Document     Document     `json:"document"`
	Selected     string       `json:"selected,omitempty"`
	Hovered      string       `json:"hovered,omitempty"`
	Viewport     Viewport     `json:"viewport"`
	History      HistoryState `json:"history"`
	HasClipboard bool         `json:"hasClipboard"`
}
