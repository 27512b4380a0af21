package services

import (
	"fmt"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// Ensure TemplateRegistry implements the interface.
var _ driving.TemplateRegistry = (*TemplateRegistry)(nil)

// TemplateRegistry maps component types to their default payloads.
// It is immutable after construction.
type TemplateRegistry struct {
	templates map[domain.ComponentType]domain.Template
}

// NewTemplateRegistry loads and validates every template from source.
// Unknown types and duplicate definitions are rejected.
func NewTemplateRegistry(source driven.TemplateSource) (*TemplateRegistry, error) {
	if source == nil {
		return nil, fmt.Errorf("template source: %w", domain.ErrInvalidInput)
	}

	loaded, err := source.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := &TemplateRegistry{templates: make(map[domain.ComponentType]domain.Template, len(loaded))}
	for _, tmpl := range loaded {
		if !tmpl.Type.IsValid() {
			return nil, fmt.Errorf("template %q: %w", tmpl.Type, domain.ErrInvalidTemplate)
		}
		if _, dup := r.templates[tmpl.Type]; dup {
			return nil, fmt.Errorf("template %q defined twice: %w", tmpl.Type, domain.ErrInvalidInput)
		}
		if tmpl.DisplayName == "" {
			tmpl.DisplayName = tmpl.Type.String()
		}
		r.templates[tmpl.Type] = tmpl.Clone()
	}

	return r, nil
}

// Lookup returns a copy of the template for a type.
func (r *TemplateRegistry) Lookup(componentType domain.ComponentType) (domain.Template, error) {
	tmpl, ok := r.templates[componentType]
	if !ok {
		return domain.Template{}, fmt.Errorf("component type %q: %w", componentType, domain.ErrInvalidTemplate)
	}
	return tmpl.Clone(), nil
}

// List returns copies of all templates in palette order.
func (r *TemplateRegistry) List() []domain.Template {
	result := make([]domain.Template, 0, len(r.templates))
	for _, t := range domain.AllComponentTypes() {
		if tmpl, ok := r.templates[t]; ok {
			result = append(result, tmpl.Clone())
		}
	}
	return result
}

// Missing returns the component types that have no template.
func (r *TemplateRegistry) Missing() []domain.ComponentType {
	var missing []domain.ComponentType
	for _, t := range domain.AllComponentTypes() {
		if _, ok := r.templates[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
