// Package domain defines the core entities of the page builder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Component: A placeable visual element on a page
//   - Document: One ordered snapshot of every component on the page
//   - Template: The default payload seeded into a new component
//   - Viewport: Zoom level and device preview mode
//   - SiteSettings: Site-wide branding, independent of the document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
