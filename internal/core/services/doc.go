// Package services implements the driving port interfaces.
// Services contain the core builder logic and orchestrate
// calls to driven ports (adapters).
//
// Document transformations are pure functions over domain.Document;
// BuilderService decides whether their result becomes a new history
// snapshot or amends the current one.
//
// Services are pure Go with no CGO or external dependencies.
package services
