package domain

// Component is one visual element instance placed on the page.
type Component struct {
	// ID is the unique identifier for the component.
	ID string `json:"id"`

	// Type selects the template and the meaningful Content keys.
	Type ComponentType `json:"type"`

	// Name is a human-readable label. Names need not be unique.
	Name string `json:"name"`

	// Content holds the type-specific attributes (text, href, media source...).
	Content Content `json:"content"`

	// Styles holds presentation attributes (spacing, colour, typography...).
	Styles Styles `json:"styles"`

	// Order is the position of the component in the flat document list.
	Order int `json:"order"`

	// ParentID links to a parent component. Nil means root-level.
	ParentID *string `json:"parentId,omitempty"`

	// IsLocked blocks structural operations on the component.
	IsLocked bool `json:"isLocked"`

	// IsHidden affects presentation only.
	IsHidden bool `json:"isHidden"`
}

// Clone returns a deep copy that shares no mutable state with c.
func (c Component) Clone() Component {
	out := c
	out.Content = c.Content.Clone()
	out.Styles = c.Styles.Clone()
	if c.ParentID != nil {
		parent := *c.ParentID
		out.ParentID = &parent
	}
	return out
}

// IsRoot returns true if the component has no parent.
func (c Component) IsRoot() bool {
	return c.ParentID == nil
}

// Parent returns the parent id, or "" for root-level components.
func (c Component) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}
