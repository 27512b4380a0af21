package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for pagecraft resources.
	uriScheme = "pagecraft://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "document",
		Description: "The page being edited, with selection, viewport and history",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "The component palette and the defaults each type starts from",
		MIMEType:    mimeJSON,
	}, s.handleTemplatesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "site",
		Name:        "site",
		Description: "Site-wide branding settings",
		MIMEType:    mimeJSON,
	}, s.handleSiteResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "components/{componentId}",
		Name:        "component",
		Description: "A single component on the page",
		MIMEType:    mimeJSON,
	}, s.handleComponentResource)
}

// handleDocumentResource returns the whole builder session.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.session(""))
}

// handleTemplatesResource returns every template in palette order.
func (s *Server) handleTemplatesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Templates.List())
}

// handleSiteResource returns the site settings, or an empty object when
// no site service is wired.
func (s *Server) handleSiteResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Site == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: mimeJSON,
				Text:     "{}",
			}},
		}, nil
	}

	settings, err := s.ports.Site.Get()
	if err != nil {
		return nil, fmt.Errorf("getting site settings: %w", err)
	}
	return jsonResource(req.Params.URI, settings)
}

// handleComponentResource returns one component.
func (s *Server) handleComponentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract componentId from URI: pagecraft://components/{componentId}
	id := extractComponentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	c, err := s.ports.Builder.Component(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, c)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractComponentID extracts the id from a URI like pagecraft://components/{componentId}.
func extractComponentID(uri string) string {
	const prefix = uriScheme + "components/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
