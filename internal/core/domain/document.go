package domain

import "fmt"

// Document is one ordered snapshot of every component on a page.
// Components are kept in a single flat list; Order mirrors the list position.
type Document struct {
	Components []Component `json:"components"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Components: []Component{}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Components: make([]Component, len(d.Components))}
	for i := range d.Components {
		out.Components[i] = d.Components[i].Clone()
	}
	return out
}

// Len returns the number of components.
func (d Document) Len() int {
	return len(d.Components)
}

// IndexOf returns the list position of the component, or -1.
func (d Document) IndexOf(id string) int {
	for i := range d.Components {
		if d.Components[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains returns true if a component with the id exists.
func (d Document) Contains(id string) bool {
	return d.IndexOf(id) >= 0
}

// Get returns a copy of the component with the given id.
func (d Document) Get(id string) (Component, bool) {
	idx := d.IndexOf(id)
	if idx < 0 {
		return Component{}, false
	}
	return d.Components[idx].Clone(), true
}

// Roots returns copies of the root-level components in order.
func (d Document) Roots() []Component {
	roots := make([]Component, 0, len(d.Components))
	for i := range d.Components {
		if d.Components[i].IsRoot() {
			roots = append(roots, d.Components[i].Clone())
		}
	}
	return roots
}

// ChildIndex builds the parent -> children adjacency index.
// Children appear in document order.
func (d Document) ChildIndex() map[string][]string {
	index := make(map[string][]string)
	for i := range d.Components {
		if parent := d.Components[i].Parent(); parent != "" {
			index[parent] = append(index[parent], d.Components[i].ID)
		}
	}
	return index
}

// Descendants returns the set containing id and every component reachable
// from it by following parent links downwards.
func (d Document) Descendants(id string) map[string]struct{} {
	index := d.ChildIndex()
	closure := map[string]struct{}{id: {}}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range index[current] {
			if _, seen := closure[child]; seen {
				continue
			}
			closure[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return closure
}

// Reindex sets every Order to its list position.
func (d Document) Reindex() {
	for i := range d.Components {
		d.Components[i].Order = i
	}
}

// Validate checks the structural invariants: unique ids, dense ordering
// and parent links that resolve inside the document.
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Components))
	for i := range d.Components {
		c := &d.Components[i]
		if c.ID == "" {
			return fmt.Errorf("component at %d has empty id: %w", i, ErrInvalidInput)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate id %s: %w", c.ID, ErrInvalidInput)
		}
		seen[c.ID] = struct{}{}
		if c.Order != i {
			return fmt.Errorf("component %s has order %d at position %d: %w", c.ID, c.Order, i, ErrInvalidIndex)
		}
	}
	for i := range d.Components {
		if parent := d.Components[i].Parent(); parent != "" {
			if _, ok := seen[parent]; !ok {
				return fmt.Errorf("component %s references missing parent %s: %w",
					d.Components[i].ID, parent, ErrNotFound)
			}
		}
	}
	return nil
}
