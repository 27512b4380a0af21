// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TemplateSource: Supplies the component template catalogue
//   - ConfigStore: Application configuration and site settings
//
// # Optional Interfaces
//
// These can be nil - the application falls back to a default:
//
//   - IDGenerator: Mints component ids. Defaults to random UUIDs.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
