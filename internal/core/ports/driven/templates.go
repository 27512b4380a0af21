package driven

import "github.com/custodia-labs/pagecraft/internal/core/domain"

// TemplateSource supplies the static component template catalogue.
// Implementations may embed the catalogue or read it from disk.
type TemplateSource interface {
	// Templates returns every template in the catalogue.
	Templates() ([]domain.Template, error)
}
