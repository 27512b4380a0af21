package tui

import "errors"

// ErrMissingBuilderService is returned when the builder session is not provided.
var ErrMissingBuilderService = errors.New("tui: builder service is required")

// ErrMissingTemplateRegistry is returned when the template registry is not provided.
var ErrMissingTemplateRegistry = errors.New("tui: template registry is required")

// ErrMissingSiteService is returned when the site settings service is not provided.
var ErrMissingSiteService = errors.New("tui: site settings service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
