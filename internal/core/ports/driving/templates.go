package driving

import "github.com/custodia-labs/pagecraft/internal/core/domain"

// TemplateRegistry resolves component types to their default payloads.
type TemplateRegistry interface {
	// Lookup returns the template for a type.
	// Returns domain.ErrInvalidTemplate if the type is unknown.
	Lookup(componentType domain.ComponentType) (domain.Template, error)

	// List returns all templates in palette order.
	List() []domain.Template
}
