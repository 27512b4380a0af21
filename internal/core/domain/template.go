package domain

// Template is the default payload seeded into a new component of a type.
type Template struct {
	// Type is the component type this template creates.
	Type ComponentType `yaml:"type" json:"type"`

	// DisplayName is the palette label and the initial component name.
	DisplayName string `yaml:"display_name" json:"displayName"`

	// Category groups templates in the palette (typography, media, layout...).
	Category string `yaml:"category" json:"category"`

	// Icon is the icon key shown next to the template.
	Icon string `yaml:"icon" json:"icon"`

	// DefaultContent is copied into every new component.
	DefaultContent Content `yaml:"content" json:"defaultContent"`

	// DefaultStyles is copied into every new component.
	DefaultStyles Styles `yaml:"styles" json:"defaultStyles"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.DefaultContent = t.DefaultContent.Clone()
	out.DefaultStyles = t.DefaultStyles.Clone()
	return out
}
