package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
)

// Ensure Sequential implements the interface.
var _ driven.IDGenerator = (*Sequential)(nil)

// Sequential mints predictable ids ("<prefix>-1", "<prefix>-2", ...).
// Replay scripts use it so that later lines can refer to earlier results.
type Sequential struct {
	prefix string
	next   atomic.Int64
}

// NewSequential returns a generator using prefix, or "component" if empty.
func NewSequential(prefix string) *Sequential {
	if prefix == "" {
		prefix = "component"
	}
	return &Sequential{prefix: prefix}
}

// NewID returns the next id in sequence.
func (s *Sequential) NewID() string {
	return s.prefix + "-" + strconv.FormatInt(s.next.Add(1), 10)
}
