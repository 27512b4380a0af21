package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

var (
	headingTemplate = domain.Template{
		Type:           domain.ComponentHeading,
		DisplayName:    "Heading",
		DefaultContent: domain.Content{domain.ContentText: "Title", domain.ContentLevel: 2},
		DefaultStyles:  domain.Styles{domain.StyleFontSize: "32px"},
	}
	sectionTemplate = domain.Template{
		Type:           domain.ComponentSection,
		DisplayName:    "Section",
		DefaultContent: domain.Content{domain.ContentChildren: []string{}},
		DefaultStyles:  domain.Styles{},
	}
	buttonTemplate = domain.Template{
		Type:           domain.ComponentButton,
		DisplayName:    "Button",
		DefaultContent: domain.Content{domain.ContentText: "Apply"},
		DefaultStyles:  domain.Styles{},
	}
)

func mustAdd(t *testing.T, doc domain.Document, tmpl domain.Template, parent, id string) domain.Document {
	t.Helper()
	next, _, err := addComponent(doc, tmpl, parent, id)
	require.NoError(t, err)
	return next
}

func TestAddComponent_CopiesTemplate(t *testing.T) {
	tmpl := headingTemplate.Clone()
	doc := domain.NewDocument()

	next, comp, err := addComponent(doc, tmpl, "", "h1")
	require.NoError(t, err)

	comp.Content[domain.ContentText] = "changed"
	next.Components[0].Styles[domain.StyleFontSize] = "1px"

	assert.Equal(t, 0, doc.Len(), "input document is untouched")
	assert.Equal(t, "Title", tmpl.DefaultContent[domain.ContentText])
	assert.Equal(t, "32px", tmpl.DefaultStyles[domain.StyleFontSize])
	assert.Equal(t, "Heading", next.Components[0].Name)
	assert.Equal(t, 0, next.Components[0].Order)
	assert.Nil(t, next.Components[0].ParentID)
}

func TestAddComponent_Parent(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")
	doc = mustAdd(t, doc, headingTemplate, "", "h1")

	t.Run("attaches to container", func(t *testing.T) {
		next, comp, err := addComponent(doc, buttonTemplate, "s1", "b1")

		require.NoError(t, err)
		assert.Equal(t, "s1", comp.Parent())
		assert.Equal(t, []string{"b1"}, next.Components[0].Content.Children())
		assert.Equal(t, 2, comp.Order)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, _, err := addComponent(doc, buttonTemplate, "ghost", "b1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("parent cannot hold children", func(t *testing.T) {
		_, _, err := addComponent(doc, buttonTemplate, "h1", "b1")
		assert.ErrorIs(t, err, domain.ErrInvalidParent)
	})
}

func TestRemoveComponent_PrunesParentList(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")
	doc = mustAdd(t, doc, buttonTemplate, "s1", "b1")
	doc = mustAdd(t, doc, buttonTemplate, "s1", "b2")

	next, removed, err := removeComponent(doc, "b1")

	require.NoError(t, err)
	assert.Len(t, removed, 1)
	assert.Equal(t, []string{"b2"}, next.Components[0].Content.Children())
	assert.Equal(t, 1, next.Components[1].Order)
	assert.Equal(t, []string{"b1", "b2"}, doc.Components[0].Content.Children(), "input document is untouched")
}

func TestRemoveComponent_Errors(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), headingTemplate, "", "h1")
	doc.Components[0].IsLocked = true

	_, _, err := removeComponent(doc, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = removeComponent(doc, "h1")
	assert.ErrorIs(t, err, domain.ErrLocked)
}

func TestRemoveComponent_LockedDescendantGoesWithParent(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")
	doc = mustAdd(t, doc, buttonTemplate, "s1", "b1")
	doc.Components[1].IsLocked = true

	next, _, err := removeComponent(doc, "s1")

	require.NoError(t, err)
	assert.Equal(t, 0, next.Len())
}

func TestInsertClone_ContainerStartsEmpty(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")
	doc = mustAdd(t, doc, buttonTemplate, "s1", "b1")

	next, comp, err := duplicateComponent(doc, "s1", "s2")

	require.NoError(t, err)
	assert.Equal(t, "Section (Copy)", comp.Name)
	assert.Empty(t, comp.Content.Children())
	assert.Equal(t, []string{"b1"}, next.Components[0].Content.Children())
	assert.NoError(t, next.Validate())
}

func TestPasteComponent_DropsMissingParent(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")
	doc = mustAdd(t, doc, buttonTemplate, "s1", "b1")
	clip, _ := doc.Get("b1")
	doc, _, err := removeComponent(doc, "s1")
	require.NoError(t, err)

	next, comp, err := pasteComponent(doc, clip, "b2")

	require.NoError(t, err)
	assert.True(t, comp.IsRoot())
	assert.Equal(t, "Button (Pasted)", comp.Name)
	assert.NoError(t, next.Validate())
}

func TestReorderComponents(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		locked   []int
		want     []string
		wantErr  error
	}{
		{"forward", 0, 2, nil, []string{"b", "c", "a", "d"}, nil},
		{"backward", 3, 1, nil, []string{"a", "d", "b", "c"}, nil},
		{"same position", 1, 1, nil, []string{"a", "b", "c", "d"}, nil},
		{"same position locked", 1, 1, []int{1}, []string{"a", "b", "c", "d"}, nil},
		{"lock outside range", 0, 1, []int{3}, []string{"b", "a", "c", "d"}, nil},
		{"moved is locked", 0, 1, []int{0}, nil, domain.ErrLocked},
		{"shifted is locked", 0, 3, []int{2}, nil, domain.ErrLocked},
		{"target is locked", 3, 0, []int{0}, nil, domain.ErrLocked},
		{"from out of range", 4, 0, nil, nil, domain.ErrInvalidIndex},
		{"to out of range", 0, 4, nil, nil, domain.ErrInvalidIndex},
		{"negative", -1, 0, nil, nil, domain.ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWith("a", "b", "c", "d")
			for _, i := range tt.locked {
				doc.Components[i].IsLocked = true
			}

			next, err := reorderComponents(doc, tt.from, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOf(next))
			assert.NoError(t, next.Validate())
			assert.Equal(t, []string{"a", "b", "c", "d"}, idsOf(doc), "input document is untouched")
		})
	}
}

func TestReorderComponents_EmptyDocument(t *testing.T) {
	_, err := reorderComponents(domain.NewDocument(), 0, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidIndex)
}

func TestPatchContent_RejectsChildren(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), sectionTemplate, "", "s1")

	_, err := patchContent(doc, "s1", domain.Content{domain.ContentChildren: []string{"x"}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCosmeticEdits(t *testing.T) {
	doc := mustAdd(t, domain.NewDocument(), headingTemplate, "", "h1")

	next, err := patchStyles(doc, "h1", domain.Styles{domain.StyleColor: "#fff", domain.StyleFontSize: nil})
	require.NoError(t, err)
	assert.Equal(t, domain.Styles{domain.StyleColor: "#fff"}, next.Components[0].Styles)

	next, err = patchContent(next, "h1", domain.Content{domain.ContentText: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hi", next.Components[0].Content.GetString(domain.ContentText))
	assert.Equal(t, 2, next.Components[0].Content[domain.ContentLevel])

	next, err = renameComponent(next, "h1", "Hero title")
	require.NoError(t, err)
	assert.Equal(t, "Hero title", next.Components[0].Name)

	next, locked, err := toggleLock(next, "h1")
	require.NoError(t, err)
	assert.True(t, locked)

	next, hidden, err := toggleVisibility(next, "h1")
	require.NoError(t, err)
	assert.True(t, hidden)
	assert.True(t, next.Components[0].IsLocked)

	_, err = renameComponent(next, "ghost", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "Heading", doc.Components[0].Name, "input document is untouched")
}

func idsOf(doc domain.Document) []string {
	ids := make([]string, 0, doc.Len())
	for _, c := range doc.Components {
		ids = append(ids, c.ID)
	}
	return ids
}
