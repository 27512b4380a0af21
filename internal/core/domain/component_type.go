package domain

// ComponentType identifies the kind of a placeable component.
// The set is closed: only the types listed below can be added to a page.
type ComponentType string

// Available component types.
const (
	// Typography.
	ComponentHeading   ComponentType = "heading"
	ComponentParagraph ComponentType = "paragraph"
	ComponentText      ComponentType = "text"
	ComponentLink      ComponentType = "link"
	ComponentList      ComponentType = "list"

	// Media.
	ComponentImage ComponentType = "image"
	ComponentVideo ComponentType = "video"
	ComponentIcon  ComponentType = "icon"
	ComponentEmbed ComponentType = "embed"

	// Layout.
	ComponentContainer ComponentType = "container"
	ComponentSection   ComponentType = "section"
	ComponentColumns   ComponentType = "columns"
	ComponentSpacer    ComponentType = "spacer"
	ComponentDivider   ComponentType = "divider"

	// Interactive.
	ComponentButton ComponentType = "button"
	ComponentForm   ComponentType = "form"
	ComponentInput  ComponentType = "input"
)

// AllComponentTypes returns every component type in palette order.
func AllComponentTypes() []ComponentType {
	return []ComponentType{
		ComponentHeading,
		ComponentParagraph,
		ComponentText,
		ComponentLink,
		ComponentList,
		ComponentImage,
		ComponentVideo,
		ComponentIcon,
		ComponentEmbed,
		ComponentContainer,
		ComponentSection,
		ComponentColumns,
		ComponentSpacer,
		ComponentDivider,
		ComponentButton,
		ComponentForm,
		ComponentInput,
	}
}

// IsValid returns true if the component type is recognised.
func (t ComponentType) IsValid() bool {
	for _, known := range AllComponentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// AcceptsChildren returns true if components of this type declare a children list.
func (t ComponentType) AcceptsChildren() bool {
	switch t {
	case ComponentContainer, ComponentSection, ComponentColumns, ComponentForm:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ComponentType) String() string {
	return string(t)
}
