package services

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagecraft/internal/adapters/driven/idgen"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/templates"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

func newTestBuilder(t *testing.T) *BuilderService {
	t.Helper()
	return newTestBuilderWithConfig(t, domain.DefaultBuilderConfig())
}

func newTestBuilderWithConfig(t *testing.T, cfg domain.BuilderConfig) *BuilderService {
	t.Helper()
	registry, err := NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	return NewBuilderService(registry, idgen.NewSequential("component"), cfg)
}

func mustAddType(t *testing.T, b *BuilderService, ct domain.ComponentType, parent string) string {
	t.Helper()
	id, err := b.Add(ct, parent)
	require.NoError(t, err)
	return id
}

// assertConsistent checks the document invariants: unique ids, dense order,
// resolvable parents and children lists that mirror the parent pointers.
func assertConsistent(t *testing.T, doc domain.Document) {
	t.Helper()
	require.NoError(t, doc.Validate())

	index := doc.ChildIndex()
	for _, c := range doc.Components {
		if _, declared := c.Content[domain.ContentChildren]; !declared {
			assert.Empty(t, index[c.ID], "%s has children but no list", c.ID)
			continue
		}
		assert.ElementsMatch(t, index[c.ID], c.Content.Children(), "children of %s", c.ID)
	}
}

func TestBuilder_AddSelectsAndCommits(t *testing.T) {
	b := newTestBuilder(t)

	id := mustAddType(t, b, domain.ComponentHeading, "")

	comp, err := b.Component(id)
	require.NoError(t, err)
	assert.Equal(t, "Heading", comp.Name)
	assert.Equal(t, "Join our team", comp.Content.GetString(domain.ContentText))
	assert.Equal(t, 0, comp.Order)
	assert.Equal(t, id, b.Selected())
	assert.Equal(t, domain.HistoryState{Length: 2, Index: 1}, b.History())
	assert.True(t, b.CanUndo())
}

func TestBuilder_RejectedAddChangesNothing(t *testing.T) {
	b := newTestBuilder(t)
	heading := mustAddType(t, b, domain.ComponentHeading, "")
	before := b.Document()
	history := b.History()

	tests := []struct {
		name    string
		ct      domain.ComponentType
		parent  string
		wantErr error
	}{
		{"unknown type", domain.ComponentType("carousel"), "", domain.ErrInvalidTemplate},
		{"missing parent", domain.ComponentButton, "ghost", domain.ErrNotFound},
		{"leaf parent", domain.ComponentButton, heading, domain.ErrInvalidParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Add(tt.ct, tt.parent)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, b.Document())
			assert.Equal(t, history, b.History())
			assert.Equal(t, heading, b.Selected())
		})
	}
}

func TestBuilder_ReorderScenario(t *testing.T) {
	b := newTestBuilder(t)
	heading := mustAddType(t, b, domain.ComponentHeading, "")
	button := mustAddType(t, b, domain.ComponentButton, "")

	require.NoError(t, b.Reorder(0, 1))
	assert.Equal(t, []string{button, heading}, idsOf(b.Document()))
	assert.Equal(t, 0, b.Document().Components[0].Order)

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{heading, button}, idsOf(b.Document()))

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{heading}, idsOf(b.Document()))

	require.NoError(t, b.Undo())
	assert.Empty(t, idsOf(b.Document()))

	assert.ErrorIs(t, b.Undo(), domain.ErrNothingToUndo)
	assert.False(t, b.CanUndo())
}

func TestBuilder_ContainerCascade(t *testing.T) {
	b := newTestBuilder(t)
	section := mustAddType(t, b, domain.ComponentSection, "")
	container := mustAddType(t, b, domain.ComponentContainer, section)
	button := mustAddType(t, b, domain.ComponentButton, container)
	require.Equal(t, button, b.Selected())

	require.NoError(t, b.Remove(container))

	doc := b.Document()
	assert.Equal(t, []string{section}, idsOf(doc))
	assert.Empty(t, doc.Components[0].Content.Children())
	assert.Equal(t, "", b.Selected(), "selection of a removed descendant is cleared")
	assertConsistent(t, doc)

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{section, container, button}, idsOf(b.Document()))
	assertConsistent(t, b.Document())
}

func TestBuilder_RemoveLocked(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentHeading, "")
	locked, err := b.ToggleLock(id)
	require.NoError(t, err)
	require.True(t, locked)

	assert.ErrorIs(t, b.Remove(id), domain.ErrLocked)
	assert.ErrorIs(t, b.Remove("ghost"), domain.ErrNotFound)
	assert.Equal(t, 1, b.Document().Len())

	require.NoError(t, b.Clear(), "clear ignores locks")
	assert.Equal(t, 0, b.Document().Len())
}

func TestBuilder_RedoTruncation(t *testing.T) {
	b := newTestBuilder(t)
	mustAddType(t, b, domain.ComponentHeading, "")
	mustAddType(t, b, domain.ComponentButton, "")
	require.NoError(t, b.Undo())
	require.True(t, b.CanRedo())

	mustAddType(t, b, domain.ComponentDivider, "")

	assert.False(t, b.CanRedo())
	assert.ErrorIs(t, b.Redo(), domain.ErrNothingToRedo)
	assert.Equal(t, domain.HistoryState{Length: 3, Index: 2}, b.History())
}

func TestBuilder_DuplicateThenRemoveOriginal(t *testing.T) {
	b := newTestBuilder(t)
	original := mustAddType(t, b, domain.ComponentButton, "")
	require.NoError(t, b.PatchContent(original, domain.Content{domain.ContentText: "Apply today"}))

	copyID, err := b.Duplicate(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, copyID)
	assert.Equal(t, copyID, b.Selected())

	require.NoError(t, b.Remove(original))

	comp, err := b.Component(copyID)
	require.NoError(t, err)
	assert.Equal(t, "Button (Copy)", comp.Name)
	assert.Equal(t, "Apply today", comp.Content.GetString(domain.ContentText))
	assert.Equal(t, 0, comp.Order)
}

func TestBuilder_DuplicateKeepsParentAndFlags(t *testing.T) {
	b := newTestBuilder(t)
	form := mustAddType(t, b, domain.ComponentForm, "")
	input := mustAddType(t, b, domain.ComponentInput, form)
	_, err := b.ToggleVisibility(input)
	require.NoError(t, err)

	copyID, err := b.Duplicate(input)
	require.NoError(t, err)

	comp, err := b.Component(copyID)
	require.NoError(t, err)
	assert.Equal(t, form, comp.Parent())
	assert.True(t, comp.IsHidden)

	parent, err := b.Component(form)
	require.NoError(t, err)
	assert.Equal(t, []string{input, copyID}, parent.Content.Children())
	assert.Len(t, b.Components(), 1, "only the form is a root")
}

func TestBuilder_DoublePaste(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentImage, "")
	require.NoError(t, b.CopyToClipboard(id))
	assert.True(t, b.HasClipboard())

	// Edits after copying do not reach the clipboard.
	require.NoError(t, b.Rename(id, "Office"))

	first, err := b.PasteFromClipboard()
	require.NoError(t, err)
	second, err := b.PasteFromClipboard()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, pasted := range []string{first, second} {
		comp, err := b.Component(pasted)
		require.NoError(t, err)
		assert.Equal(t, "Image (Pasted)", comp.Name)
	}
	assert.Equal(t, second, b.Selected())
	assert.Equal(t, 3, b.Document().Len())
	assertConsistent(t, b.Document())
}

func TestBuilder_PasteEmptyClipboard(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.PasteFromClipboard()

	assert.ErrorIs(t, err, domain.ErrClipboardEmpty)
	assert.False(t, b.CanUndo())
	assert.ErrorIs(t, b.CopyToClipboard("ghost"), domain.ErrNotFound)
	assert.False(t, b.HasClipboard())
}

func TestBuilder_PasteAfterParentRemoved(t *testing.T) {
	b := newTestBuilder(t)
	section := mustAddType(t, b, domain.ComponentSection, "")
	button := mustAddType(t, b, domain.ComponentButton, section)
	require.NoError(t, b.CopyToClipboard(button))
	require.NoError(t, b.Remove(section))

	pasted, err := b.PasteFromClipboard()
	require.NoError(t, err)

	comp, err := b.Component(pasted)
	require.NoError(t, err)
	assert.True(t, comp.IsRoot())
	assertConsistent(t, b.Document())
}

func TestBuilder_CosmeticOpsAmendHistory(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentHeading, "")
	history := b.History()

	require.NoError(t, b.PatchStyles(id, domain.Styles{domain.StyleColor: "#FF0000"}))
	require.NoError(t, b.PatchContent(id, domain.Content{domain.ContentText: "Hello"}))
	require.NoError(t, b.Rename(id, "Hero"))
	_, err := b.ToggleLock(id)
	require.NoError(t, err)
	_, err = b.ToggleVisibility(id)
	require.NoError(t, err)

	assert.Equal(t, history, b.History())

	// Undo reverts the add together with the amended edits.
	require.NoError(t, b.Undo())
	assert.Equal(t, 0, b.Document().Len())

	require.NoError(t, b.Redo())
	comp, err := b.Component(id)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", comp.Styles[domain.StyleColor])
	assert.Equal(t, "Hero", comp.Name)
	assert.True(t, comp.IsLocked)
	assert.True(t, comp.IsHidden)
}

func TestBuilder_CosmeticOpsAllowedWhenLocked(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentText, "")
	_, err := b.ToggleLock(id)
	require.NoError(t, err)

	assert.NoError(t, b.PatchStyles(id, domain.Styles{domain.StyleGap: "4px"}))
	assert.NoError(t, b.Rename(id, "Pinned"))
	assert.ErrorIs(t, b.PatchStyles("ghost", domain.Styles{}), domain.ErrNotFound)
}

func TestBuilder_ReorderAndMove(t *testing.T) {
	b := newTestBuilder(t)
	a := mustAddType(t, b, domain.ComponentText, "")
	c := mustAddType(t, b, domain.ComponentText, "")
	d := mustAddType(t, b, domain.ComponentText, "")

	require.NoError(t, b.Move(d, 0))
	assert.Equal(t, []string{d, a, c}, idsOf(b.Document()))

	history := b.History()
	require.NoError(t, b.Reorder(1, 1))
	assert.Equal(t, history.Length+1, b.History().Length, "same-position reorder still commits")

	assert.ErrorIs(t, b.Reorder(0, 3), domain.ErrInvalidIndex)
	assert.ErrorIs(t, b.Move("ghost", 0), domain.ErrNotFound)

	_, err := b.ToggleLock(a)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Move(c, 0), domain.ErrLocked)
	assert.Equal(t, []string{d, a, c}, idsOf(b.Document()))
}

func TestBuilder_SelectAndHover(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentHeading, "")

	require.NoError(t, b.Hover(id))
	assert.Equal(t, id, b.Hovered())
	assert.ErrorIs(t, b.Select("ghost"), domain.ErrNotFound)
	assert.ErrorIs(t, b.Hover("ghost"), domain.ErrNotFound)
	assert.Equal(t, id, b.Selected())

	require.NoError(t, b.Select(""))
	assert.Equal(t, "", b.Selected())

	require.NoError(t, b.Select(id))
	require.NoError(t, b.Undo())
	assert.Equal(t, "", b.Selected(), "undo reconciles selection")
	assert.Equal(t, "", b.Hovered(), "undo reconciles hover")

	require.NoError(t, b.Redo())
	assert.Equal(t, "", b.Selected(), "redo does not restore selection")
}

func TestBuilder_Viewport(t *testing.T) {
	b := newTestBuilder(t)
	assert.Equal(t, domain.DefaultViewport(), b.Viewport())

	assert.Equal(t, 150, b.SetZoom(200))
	assert.Equal(t, 50, b.SetZoom(10))
	assert.Equal(t, 80, b.SetZoom(80))
	assert.Equal(t, 80, b.Viewport().Zoom)

	require.NoError(t, b.SetDevice(domain.DeviceMobile))
	assert.ErrorIs(t, b.SetDevice("watch"), domain.ErrInvalidInput)
	assert.Equal(t, domain.DeviceMobile, b.Viewport().Device)
	assert.False(t, b.CanUndo(), "viewport changes are not historied")
}

func TestBuilder_ConfigDefaults(t *testing.T) {
	b := newTestBuilderWithConfig(t, domain.BuilderConfig{
		DefaultZoom:   300,
		DefaultDevice: domain.DeviceTablet,
		HistoryLimit:  3,
	})

	assert.Equal(t, domain.Viewport{Zoom: 150, Device: domain.DeviceTablet}, b.Viewport())

	for i := 0; i < 5; i++ {
		mustAddType(t, b, domain.ComponentSpacer, "")
	}
	assert.Equal(t, domain.HistoryState{Length: 3, Index: 2}, b.History())
	require.NoError(t, b.Undo())
	require.NoError(t, b.Undo())
	assert.ErrorIs(t, b.Undo(), domain.ErrNothingToUndo)
	assert.Equal(t, 3, b.Document().Len())
}

func TestBuilder_ComponentsReturnsRoots(t *testing.T) {
	b := newTestBuilder(t)
	section := mustAddType(t, b, domain.ComponentSection, "")
	mustAddType(t, b, domain.ComponentParagraph, section)
	heading := mustAddType(t, b, domain.ComponentHeading, "")

	roots := b.Components()

	require.Len(t, roots, 2)
	assert.Equal(t, section, roots[0].ID)
	assert.Equal(t, heading, roots[1].ID)
	assert.Equal(t, 3, b.Document().Len())
}

func TestBuilder_DocumentIsACopy(t *testing.T) {
	b := newTestBuilder(t)
	id := mustAddType(t, b, domain.ComponentHeading, "")

	doc := b.Document()
	doc.Components[0].Name = "mutated"
	comp, _ := b.Component(id)
	comp.Styles[domain.StyleColor] = "mutated"

	current, err := b.Component(id)
	require.NoError(t, err)
	assert.Equal(t, "Heading", current.Name)
	assert.NotEqual(t, "mutated", current.Styles[domain.StyleColor])
}

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

func TestBuilder_RejectsReusedIDs(t *testing.T) {
	registry, err := NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	b := NewBuilderService(registry, fixedIDs{id: "same"}, domain.DefaultBuilderConfig())

	_, err = b.Add(domain.ComponentText, "")
	require.NoError(t, err)
	_, err = b.Add(domain.ComponentText, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, b.Document().Len())
}

// replayIDs hands out ids from a fixed list.
type replayIDs struct {
	ids  []string
	next int
}

func (r *replayIDs) NewID() string {
	id := r.ids[r.next]
	r.next++
	return id
}

func TestBuilder_RejectsIDsFromUndoneBranch(t *testing.T) {
	registry, err := NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	b := NewBuilderService(registry, &replayIDs{ids: []string{"a", "a", "b"}}, domain.DefaultBuilderConfig())

	_, err = b.Add(domain.ComponentText, "")
	require.NoError(t, err)
	require.NoError(t, b.Undo())
	require.Zero(t, b.Document().Len())

	_, err = b.Add(domain.ComponentText, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, b.Document().Len())

	id, err := b.Add(domain.ComponentText, "")
	require.NoError(t, err)
	assert.Equal(t, "b", id)
}

func TestBuilder_RejectsIDsFromTrimmedHistory(t *testing.T) {
	registry, err := NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	cfg := domain.DefaultBuilderConfig()
	cfg.HistoryLimit = 2
	b := NewBuilderService(registry, &replayIDs{ids: []string{"a", "b", "a"}}, cfg)

	mustAddType(t, b, domain.ComponentText, "")
	require.NoError(t, b.Clear())
	mustAddType(t, b, domain.ComponentText, "")

	_, err = b.Add(domain.ComponentText, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuilder_NilIDGenerator(t *testing.T) {
	registry, err := NewTemplateRegistry(templates.NewEmbeddedSource())
	require.NoError(t, err)
	b := NewBuilderService(registry, nil, domain.DefaultBuilderConfig())

	_, err = b.Add(domain.ComponentText, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, b.Document().Len())
	assert.False(t, b.CanUndo())
}

func TestBuilder_Snapshot(t *testing.T) {
	b := newTestBuilder(t)
	section := mustAddType(t, b, domain.ComponentSection, "")
	heading := mustAddType(t, b, domain.ComponentHeading, section)
	require.NoError(t, b.Hover(section))
	require.NoError(t, b.CopyToClipboard(heading))
	b.SetZoom(120)

	snap := b.Snapshot()

	assert.Equal(t, b.Document(), snap.Document)
	assert.Equal(t, heading, snap.Selected)
	assert.Equal(t, section, snap.Hovered)
	assert.Equal(t, 120, snap.Viewport.Zoom)
	assert.Equal(t, domain.HistoryState{Length: 3, Index: 2}, snap.History)
	assert.True(t, snap.HasClipboard)

	snap.Document.Components[0].Name = "mutated"
	assert.NotEqual(t, "mutated", b.Document().Components[0].Name)
}

func TestBuilder_SnapshotIsConsistentUnderConcurrency(t *testing.T) {
	b := newTestBuilder(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, _ = b.Add(domain.ComponentText, "")
			}
		}()
	}
	for i := 0; i < 100; i++ {
		snap := b.Snapshot()
		assert.Equal(t, snap.Document.Len()+1, snap.History.Length)
		if snap.Selected != "" {
			assert.True(t, snap.Document.Contains(snap.Selected))
		}
	}
	wg.Wait()
	assert.Equal(t, 100, b.Document().Len())
}

func TestBuilder_NilRegistry(t *testing.T) {
	b := NewBuilderService(nil, nil, domain.DefaultBuilderConfig())

	_, err := b.Add(domain.ComponentText, "")

	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

// TestBuilder_RandomSequencesKeepInvariants drives the session with random
// commands and checks the document after every step.
func TestBuilder_RandomSequencesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := newTestBuilder(t)
		rng := rand.New(rand.NewSource(seed))
		types := domain.AllComponentTypes()
		seen := make(map[string]struct{})

		pick := func() string {
			doc := b.Document()
			if doc.Len() == 0 {
				return "ghost"
			}
			return doc.Components[rng.Intn(doc.Len())].ID
		}

		for step := 0; step < 150; step++ {
			var err error
			switch rng.Intn(10) {
			case 0, 1, 2:
				parent := ""
				if rng.Intn(2) == 0 {
					parent = pick()
				}
				var id string
				id, err = b.Add(types[rng.Intn(len(types))], parent)
				if err == nil {
					_, dup := seen[id]
					require.False(t, dup, "id %s minted twice", id)
					seen[id] = struct{}{}
				}
			case 3:
				err = b.Remove(pick())
			case 4:
				var id string
				id, err = b.Duplicate(pick())
				if err == nil {
					seen[id] = struct{}{}
				}
			case 5:
				if err = b.CopyToClipboard(pick()); err == nil {
					var id string
					id, err = b.PasteFromClipboard()
					if err == nil {
						seen[id] = struct{}{}
					}
				}
			case 6:
				n := b.Document().Len() + 1
				err = b.Reorder(rng.Intn(n), rng.Intn(n))
			case 7:
				err = b.Undo()
			case 8:
				err = b.Redo()
			case 9:
				_, err = b.ToggleLock(pick())
			}

			if err != nil {
				require.True(t, isRejection(err), "seed %d step %d: unexpected error %v", seed, step, err)
			}
			assertConsistent(t, b.Document())
			state := b.History()
			require.True(t, state.Index >= 0 && state.Index < state.Length)
			if sel := b.Selected(); sel != "" {
				require.True(t, b.Document().Contains(sel), "selection points at a live component")
			}
		}
	}
}

func isRejection(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrInvalidIndex, domain.ErrLocked, domain.ErrInvalidParent,
		domain.ErrNothingToUndo, domain.ErrNothingToRedo,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func TestBuilder_ConcurrentCommands(t *testing.T) {
	b := newTestBuilder(t)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = b.Add(domain.ComponentText, "")
			_ = b.Document()
			_ = b.SetZoom(120)
		}()
	}
	wg.Wait()

	doc := b.Document()
	assert.Equal(t, 40, doc.Len())
	assertConsistent(t, doc)
}
