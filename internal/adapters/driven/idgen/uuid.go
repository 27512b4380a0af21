// Package idgen provides component id generators.
package idgen

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
)

// Ensure UUID implements the interface.
var _ driven.IDGenerator = UUID{}

// UUID mints random version 4 UUIDs.
type UUID struct{}

// NewID returns a new random UUID string.
func (UUID) NewID() string {
	return uuid.New().String()
}
