package driven

// IDGenerator mints component identifiers.
// Every call must return an id never returned before by the same generator.
type IDGenerator interface {
	// NewID returns a fresh identifier.
	NewID() string
}
