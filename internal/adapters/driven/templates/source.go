// Package templates provides the component template catalogue.
// The default catalogue is embedded in the binary as YAML.
package templates

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Ensure Source implements the interface.
var _ driven.TemplateSource = (*Source)(nil)

// catalog is the on-disk shape of a template catalogue.
type catalog struct {
	Templates []domain.Template `yaml:"templates"`
}

// Source reads templates from a YAML document.
type Source struct {
	data []byte
}

// NewEmbeddedSource returns the catalogue shipped with the binary.
func NewEmbeddedSource() *Source {
	return &Source{data: embeddedCatalog}
}

// NewFileSource reads a catalogue from path.
func NewFileSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalogue: %w", err)
	}
	return &Source{data: data}, nil
}

// NewSource parses a catalogue from raw YAML.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// Templates decodes every template in the catalogue.
func (s *Source) Templates() ([]domain.Template, error) {
	var c catalog
	if err := yaml.Unmarshal(s.data, &c); err != nil {
		return nil, fmt.Errorf("parse template catalogue: %w", err)
	}

	for i := range c.Templates {
		normaliseContent(c.Templates[i].DefaultContent)
	}
	return c.Templates, nil
}

// normaliseContent rewrites string lists, which yaml.v3 decodes as []any,
// to []string so that components built from YAML and from code look the
// same. It edits the freshly decoded map in place.
func normaliseContent(c domain.Content) {
	for _, key := range []string{domain.ContentItems, domain.ContentChildren} {
		if _, ok := c[key]; ok {
			c[key] = c.GetStrings(key)
		}
	}
}
