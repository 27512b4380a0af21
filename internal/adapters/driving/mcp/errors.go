// Package mcp provides an MCP (Model Context Protocol) server adapter for pagecraft.
// It lets AI assistants edit a page through the same builder commands the
// CLI and TUI use.
package mcp

import "errors"

var (
	// ErrMissingBuilderService is returned when the builder session is not provided.
	ErrMissingBuilderService = errors.New("mcp: builder service is required")

	// ErrMissingTemplateRegistry is returned when the template registry is not provided.
	ErrMissingTemplateRegistry = errors.New("mcp: template registry is required")

	// ErrSiteUnavailable is returned by site tools when no site service is wired.
	ErrSiteUnavailable = errors.New("mcp: site settings are not available")
)
