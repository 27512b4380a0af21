package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

// Ensure BuilderService implements the interface.
var _ driving.BuilderService = (*BuilderService)(nil)

// BuilderService is one editing session over a page document.
// It owns the history and the transient trackers; nothing is shared
// between sessions.
type BuilderService struct {
	mu sync.Mutex

	templates driving.TemplateRegistry
	ids       driven.IDGenerator
	history   *History

	// issued holds every id minted by this session, including ids that
	// only survive in undone or trimmed snapshots.
	issued map[string]struct{}

	selected  string
	hovered   string
	clipboard *domain.Component
	viewport  domain.Viewport
}

// NewBuilderService creates a session with an empty document.
// A nil id generator leaves the session read-only: every command that
// creates a component fails with ErrInvalidInput.
func NewBuilderService(
	templates driving.TemplateRegistry,
	ids driven.IDGenerator,
	cfg domain.BuilderConfig,
) *BuilderService {
	viewport := domain.DefaultViewport()
	if cfg.DefaultZoom != 0 {
		viewport.Zoom = domain.ClampZoom(cfg.DefaultZoom)
	}
	if cfg.DefaultDevice.IsValid() {
		viewport.Device = cfg.DefaultDevice
	}

	return &BuilderService{
		templates: templates,
		ids:       ids,
		history:   NewHistory(cfg.HistoryLimit),
		issued:    make(map[string]struct{}),
		viewport:  viewport,
	}
}

// Add creates a component from the template of the given type and selects it.
func (s *BuilderService) Add(componentType domain.ComponentType, parentID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.templates == nil {
		return "", reject("add", fmt.Errorf("no template registry: %w", domain.ErrInvalidTemplate))
	}
	tmpl, err := s.templates.Lookup(componentType)
	if err != nil {
		return "", reject("add", err)
	}

	id, err := s.freshID()
	if err != nil {
		return "", reject("add", err)
	}
	next, comp, err := addComponent(s.history.peek(), tmpl, parentID, id)
	if err != nil {
		return "", reject("add", err)
	}

	s.commit(next)
	s.selected = comp.ID
	logger.Debug("builder: add %s -> %s (parent=%q)", componentType, comp.ID, parentID)
	return comp.ID, nil
}

// Remove deletes a component and all of its descendants.
func (s *BuilderService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed, err := removeComponent(s.history.peek(), id)
	if err != nil {
		return reject("remove", err)
	}

	s.commit(next)
	logger.Debug("builder: remove %s (%d components)", id, len(removed))
	return nil
}

// Duplicate clones a component to the end of the list and selects the copy.
func (s *BuilderService) Duplicate(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newID, err := s.freshID()
	if err != nil {
		return "", reject("duplicate", err)
	}
	next, comp, err := duplicateComponent(s.history.peek(), id, newID)
	if err != nil {
		return "", reject("duplicate", err)
	}

	s.commit(next)
	s.selected = comp.ID
	logger.Debug("builder: duplicate %s -> %s", id, comp.ID)
	return comp.ID, nil
}

// CopyToClipboard stores a value copy of a component.
func (s *BuilderService) CopyToClipboard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, ok := s.history.peek().Get(id)
	if !ok {
		return reject("copy", fmt.Errorf("component %s: %w", id, domain.ErrNotFound))
	}

	s.clipboard = &comp
	logger.Debug("builder: copy %s", id)
	return nil
}

// PasteFromClipboard inserts a clone of the clipboard at the end and selects it.
func (s *BuilderService) PasteFromClipboard() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clipboard == nil {
		return "", domain.ErrClipboardEmpty
	}

	newID, err := s.freshID()
	if err != nil {
		return "", reject("paste", err)
	}
	next, comp, err := pasteComponent(s.history.peek(), *s.clipboard, newID)
	if err != nil {
		return "", reject("paste", err)
	}

	s.commit(next)
	s.selected = comp.ID
	logger.Debug("builder: paste -> %s", comp.ID)
	return comp.ID, nil
}

// Reorder moves the component at from to position to.
func (s *BuilderService) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := reorderComponents(s.history.peek(), from, to)
	if err != nil {
		return reject("reorder", err)
	}

	s.commit(next)
	logger.Debug("builder: reorder %d -> %d", from, to)
	return nil
}

// Move moves the component with the given id to position to.
func (s *BuilderService) Move(id string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.history.peek()
	from := doc.IndexOf(id)
	if from < 0 {
		return reject("move", fmt.Errorf("component %s: %w", id, domain.ErrNotFound))
	}
	next, err := reorderComponents(doc, from, to)
	if err != nil {
		return reject("move", err)
	}

	s.commit(next)
	logger.Debug("builder: move %s %d -> %d", id, from, to)
	return nil
}

// PatchStyles shallow-merges styles into a component.
func (s *BuilderService) PatchStyles(id string, patch domain.Styles) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := patchStyles(s.history.peek(), id, patch)
	if err != nil {
		return reject("patch styles", err)
	}

	s.history.Amend(next)
	logger.Debug("builder: patch styles %s (%d keys)", id, len(patch))
	return nil
}

// PatchContent shallow-merges content into a component.
func (s *BuilderService) PatchContent(id string, patch domain.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := patchContent(s.history.peek(), id, patch)
	if err != nil {
		return reject("patch content", err)
	}

	s.history.Amend(next)
	logger.Debug("builder: patch content %s (%d keys)", id, len(patch))
	return nil
}

// Rename sets the display name of a component.
func (s *BuilderService) Rename(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := renameComponent(s.history.peek(), id, name)
	if err != nil {
		return reject("rename", err)
	}

	s.history.Amend(next)
	logger.Debug("builder: rename %s to %q", id, name)
	return nil
}

// ToggleLock flips the lock flag and returns the new value.
func (s *BuilderService) ToggleLock(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, locked, err := toggleLock(s.history.peek(), id)
	if err != nil {
		return false, reject("toggle lock", err)
	}

	s.history.Amend(next)
	logger.Debug("builder: %s locked=%t", id, locked)
	return locked, nil
}

// ToggleVisibility flips the hidden flag and returns the new value.
func (s *BuilderService) ToggleVisibility(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, hidden, err := toggleVisibility(s.history.peek(), id)
	if err != nil {
		return false, reject("toggle visibility", err)
	}

	s.history.Amend(next)
	logger.Debug("builder: %s hidden=%t", id, hidden)
	return hidden, nil
}

// Clear removes every component.
func (s *BuilderService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(domain.NewDocument())
	logger.Debug("builder: clear")
	return nil
}

// Undo steps back one snapshot.
func (s *BuilderService) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.history.Undo(); err != nil {
		return err
	}
	s.reconcile()
	logger.Debug("builder: undo -> %d/%d", s.history.State().Index, s.history.State().Length)
	return nil
}

// Redo steps forward one snapshot.
func (s *BuilderService) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.history.Redo(); err != nil {
		return err
	}
	s.reconcile()
	logger.Debug("builder: redo -> %d/%d", s.history.State().Index, s.history.State().Length)
	return nil
}

// Select marks a component as selected. An empty id clears the selection.
func (s *BuilderService) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && !s.history.peek().Contains(id) {
		return fmt.Errorf("select %s: %w", id, domain.ErrNotFound)
	}
	s.selected = id
	return nil
}

// Hover marks a component as hovered. An empty id clears the hover.
func (s *BuilderService) Hover(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && !s.history.peek().Contains(id) {
		return fmt.Errorf("hover %s: %w", id, domain.ErrNotFound)
	}
	s.hovered = id
	return nil
}

// SetZoom clamps and stores the zoom level, returning the stored value.
func (s *BuilderService) SetZoom(zoom int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport.Zoom = domain.ClampZoom(zoom)
	return s.viewport.Zoom
}

// SetDevice changes the preview device.
func (s *BuilderService) SetDevice(device domain.DeviceMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !device.IsValid() {
		return fmt.Errorf("device %q: %w", device, domain.ErrInvalidInput)
	}
	s.viewport.Device = device
	return nil
}

// Components returns the root-level components in order.
func (s *BuilderService) Components() []domain.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.peek().Roots()
}

// Document returns a copy of the full flat document.
func (s *BuilderService) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Current()
}

// Component returns a copy of a single component.
func (s *BuilderService) Component(id string) (domain.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, ok := s.history.peek().Get(id)
	if !ok {
		return domain.Component{}, fmt.Errorf("component %s: %w", id, domain.ErrNotFound)
	}
	return comp, nil
}

// Selected returns the selected component id, or "".
func (s *BuilderService) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Hovered returns the hovered component id, or "".
func (s *BuilderService) Hovered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}

// HasClipboard reports whether paste is available.
func (s *BuilderService) HasClipboard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clipboard != nil
}

// CanUndo reports whether Undo would succeed.
func (s *BuilderService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (s *BuilderService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// History returns the current history position.
func (s *BuilderService) History() domain.HistoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.State()
}

// Viewport returns the current zoom and device mode.
func (s *BuilderService) Viewport() domain.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// Snapshot reads the document and every tracker under one lock.
func (s *BuilderService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Session{
		Document:     s.history.Current(),
		Selected:     s.selected,
		Hovered:      s.hovered,
		Viewport:     s.viewport,
		History:      s.history.State(),
		HasClipboard: s.clipboard != nil,
	}
}

// commit records a structural change and reconciles the trackers (caller must hold lock).
func (s *BuilderService) commit(next domain.Document) {
	s.history.Commit(next)
	s.reconcile()
}

// reconcile clears trackers that reference components absent from the
// current snapshot (caller must hold lock).
func (s *BuilderService) reconcile() {
	doc := s.history.peek()
	if s.selected != "" && !doc.Contains(s.selected) {
		s.selected = ""
	}
	if s.hovered != "" && !doc.Contains(s.hovered) {
		s.hovered = ""
	}
}

// freshID mints an id never issued before in this session, so ids stay
// unique across undo, redo and history trimming (caller must hold lock).
func (s *BuilderService) freshID() (string, error) {
	if s.ids == nil {
		return "", fmt.Errorf("no id generator: %w", domain.ErrInvalidInput)
	}
	id := s.ids.NewID()
	if _, reused := s.issued[id]; id == "" || reused {
		return "", fmt.Errorf("id generator returned unusable id %q: %w", id, domain.ErrInvalidInput)
	}
	s.issued[id] = struct{}{}
	return id, nil
}

func reject(op string, err error) error {
	logger.Warn("builder: %s rejected: %v", op, err)
	return err
}
