package services

import (
	"fmt"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// Pure document transformations. Every function leaves its input untouched
// and returns a new document; the builder session decides whether the
// result is committed as a snapshot or amended into the current one.

const (
	copySuffix  = " (Copy)"
	pasteSuffix = " (Pasted)"
)

// addComponent appends a component built from tmpl.
func addComponent(
	doc domain.Document,
	tmpl domain.Template,
	parentID, newID string,
) (domain.Document, domain.Component, error) {
	next := doc.Clone()

	parentIdx := -1
	if parentID != "" {
		parentIdx = next.IndexOf(parentID)
		if parentIdx < 0 {
			return doc, domain.Component{}, fmt.Errorf("parent %s: %w", parentID, domain.ErrNotFound)
		}
		if !next.Components[parentIdx].Type.AcceptsChildren() {
			return doc, domain.Component{}, fmt.Errorf("parent %s of type %s: %w",
				parentID, next.Components[parentIdx].Type, domain.ErrInvalidParent)
		}
	}

	comp := domain.Component{
		ID:      newID,
		Type:    tmpl.Type,
		Name:    tmpl.DisplayName,
		Content: tmpl.DefaultContent.Clone(),
		Styles:  tmpl.DefaultStyles.Clone(),
		Order:   next.Len(),
	}
	if comp.Type.AcceptsChildren() {
		comp.Content[domain.ContentChildren] = []string{}
	}
	if parentIdx >= 0 {
		parent := parentID
		comp.ParentID = &parent
		attachChild(&next.Components[parentIdx], newID)
	}

	next.Components = append(next.Components, comp)
	next.Reindex()
	return next, comp.Clone(), nil
}

// removeComponent deletes id and its transitive descendants.
// It returns the set of removed ids.
func removeComponent(doc domain.Document, id string) (domain.Document, map[string]struct{}, error) {
	idx := doc.IndexOf(id)
	if idx < 0 {
		return doc, nil, fmt.Errorf("component %s: %w", id, domain.ErrNotFound)
	}
	if doc.Components[idx].IsLocked {
		return doc, nil, fmt.Errorf("remove %s: %w", id, domain.ErrLocked)
	}

	removed := doc.Descendants(id)
	next := domain.Document{Components: make([]domain.Component, 0, doc.Len()-len(removed))}
	for i := range doc.Components {
		if _, gone := removed[doc.Components[i].ID]; gone {
			continue
		}
		comp := doc.Components[i].Clone()
		detachChildren(&comp, removed)
		next.Components = append(next.Components, comp)
	}
	next.Reindex()
	return next, removed, nil
}

// duplicateComponent appends a clone of id under a fresh id.
func duplicateComponent(doc domain.Document, id, newID string) (domain.Document, domain.Component, error) {
	src, ok := doc.Get(id)
	if !ok {
		return doc, domain.Component{}, fmt.Errorf("component %s: %w", id, domain.ErrNotFound)
	}
	return insertClone(doc, src, newID, copySuffix)
}

// pasteComponent appends a clone of the clipboard value under a fresh id.
// A parent that no longer exists is dropped and the clone lands at root level.
func pasteComponent(
	doc domain.Document,
	clip domain.Component,
	newID string,
) (domain.Document, domain.Component, error) {
	src := clip.Clone()
	if parent := src.Parent(); parent != "" && !doc.Contains(parent) {
		src.ParentID = nil
	}
	return insertClone(doc, src, newID, pasteSuffix)
}

func insertClone(
	doc domain.Document,
	src domain.Component,
	newID, suffix string,
) (domain.Document, domain.Component, error) {
	next := doc.Clone()

	comp := src.Clone()
	comp.ID = newID
	comp.Name = src.Name + suffix
	comp.Order = next.Len()
	// A clone starts without children: the originals still point at src.
	if _, declared := comp.Content[domain.ContentChildren]; declared {
		comp.Content[domain.ContentChildren] = []string{}
	}

	if parent := comp.Parent(); parent != "" {
		parentIdx := next.IndexOf(parent)
		if parentIdx < 0 {
			return doc, domain.Component{}, fmt.Errorf("parent %s: %w", parent, domain.ErrNotFound)
		}
		attachChild(&next.Components[parentIdx], newID)
	}

	next.Components = append(next.Components, comp)
	next.Reindex()
	return next, comp.Clone(), nil
}

// reorderComponents moves the component at from to position to.
func reorderComponents(doc domain.Document, from, to int) (domain.Document, error) {
	n := doc.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return doc, fmt.Errorf("reorder %d -> %d with %d components: %w", from, to, n, domain.ErrInvalidIndex)
	}

	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	if from != to {
		for i := lo; i <= hi; i++ {
			if doc.Components[i].IsLocked {
				return doc, fmt.Errorf("reorder moves %s: %w", doc.Components[i].ID, domain.ErrLocked)
			}
		}
	}

	next := doc.Clone()
	moved := next.Components[from]
	rest := append(next.Components[:from:from], next.Components[from+1:]...)
	out := make([]domain.Component, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	next.Components = out
	next.Reindex()
	return next, nil
}

// editComponent applies fn to a copy of the component with the given id.
func editComponent(doc domain.Document, id string, fn func(*domain.Component)) (domain.Document, error) {
	idx := doc.IndexOf(id)
	if idx < 0 {
		return doc, fmt.Errorf("component %s: %w", id, domain.ErrNotFound)
	}
	next := doc.Clone()
	fn(&next.Components[idx])
	return next, nil
}

func patchStyles(doc domain.Document, id string, patch domain.Styles) (domain.Document, error) {
	return editComponent(doc, id, func(c *domain.Component) {
		c.Styles = c.Styles.Merge(patch)
	})
}

// patchContent refuses to touch the children list, which only add, remove,
// duplicate and paste maintain.
func patchContent(doc domain.Document, id string, patch domain.Content) (domain.Document, error) {
	if _, ok := patch[domain.ContentChildren]; ok {
		return doc, fmt.Errorf("patch %s: %q is managed by the builder: %w",
			id, domain.ContentChildren, domain.ErrInvalidInput)
	}
	return editComponent(doc, id, func(c *domain.Component) {
		c.Content = c.Content.Merge(patch)
	})
}

func renameComponent(doc domain.Document, id, name string) (domain.Document, error) {
	return editComponent(doc, id, func(c *domain.Component) {
		c.Name = name
	})
}

func toggleLock(doc domain.Document, id string) (domain.Document, bool, error) {
	var locked bool
	next, err := editComponent(doc, id, func(c *domain.Component) {
		c.IsLocked = !c.IsLocked
		locked = c.IsLocked
	})
	return next, locked, err
}

func toggleVisibility(doc domain.Document, id string) (domain.Document, bool, error) {
	var hidden bool
	next, err := editComponent(doc, id, func(c *domain.Component) {
		c.IsHidden = !c.IsHidden
		hidden = c.IsHidden
	})
	return next, hidden, err
}

func attachChild(parent *domain.Component, childID string) {
	if parent.Content == nil {
		parent.Content = domain.Content{}
	}
	parent.Content[domain.ContentChildren] = append(parent.Content.Children(), childID)
}

func detachChildren(comp *domain.Component, removed map[string]struct{}) {
	if _, declared := comp.Content[domain.ContentChildren]; !declared {
		return
	}
	children := comp.Content.Children()
	kept := make([]string, 0, len(children))
	for _, child := range children {
		if _, gone := removed[child]; !gone {
			kept = append(kept, child)
		}
	}
	comp.Content[domain.ContentChildren] = kept
}
