package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// AddInput is the input schema for the add_component tool.
type AddInput struct {
	Type     string `json:"type" jsonschema:"component type, see list_templates"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"container to add the component to; omit for root level"`
}

// IDInput identifies a single component.
type IDInput struct {
	ID string `json:"id" jsonschema:"component id"`
}

// ReorderInput is the input schema for the reorder_components tool.
type ReorderInput struct {
	From int `json:"from" jsonschema:"current position in the flat component list"`
	To   int `json:"to" jsonschema:"target position in the flat component list"`
}

// MoveInput is the input schema for the move_component tool.
type MoveInput struct {
	ID string `json:"id" jsonschema:"component id"`
	To int    `json:"to" jsonschema:"target position in the flat component list"`
}

// PatchInput is the input schema for the patch tools.
type PatchInput struct {
	ID     string         `json:"id" jsonschema:"component id"`
	Values map[string]any `json:"values" jsonschema:"keys to merge; a null value removes the key"`
}

// RenameInput is the input schema for the rename_component tool.
type RenameInput struct {
	ID   string `json:"id" jsonschema:"component id"`
	Name string `json:"name" jsonschema:"new display name"`
}

// TrackInput is the input schema for the select and hover tools.
type TrackInput struct {
	ID string `json:"id,omitempty" jsonschema:"component id; omit to clear"`
}

// ZoomInput is the input schema for the set_zoom tool.
type ZoomInput struct {
	Zoom int `json:"zoom" jsonschema:"zoom percentage, clamped to 50-150"`
}

// DeviceInput is the input schema for the set_device tool.
type DeviceInput struct {
	Device string `json:"device" jsonschema:"desktop, tablet or mobile"`
}

// TemplatesInput is the input schema for the list_templates tool.
type TemplatesInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list one category (typography, media, layout, interactive)"`
}

// SessionOutput is the builder session after a command.
type SessionOutput struct {
	// ID is the component created by add, duplicate or paste.
	ID string `json:"id,omitempty"`
	// Flag is the new value of a toggled flag.
	Flag         *bool               `json:"flag,omitempty"`
	Components   []domain.Component  `json:"components"`
	Selected     string              `json:"selected,omitempty"`
	Hovered      string              `json:"hovered,omitempty"`
	Viewport     domain.Viewport     `json:"viewport"`
	History      domain.HistoryState `json:"history"`
	CanUndo      bool                `json:"can_undo"`
	CanRedo      bool                `json:"can_redo"`
	HasClipboard bool                `json:"has_clipboard"`
}

// ComponentOutput is the output schema for the get_component tool.
type ComponentOutput struct {
	Component domain.Component `json:"component"`
}

// TemplatesOutput is the output schema for the list_templates tool.
type TemplatesOutput struct {
	Templates []domain.Template `json:"templates"`
	Count     int               `json:"count"`
}

// SiteInput is the input schema for the update_site tool. Omitted fields
// keep their current value.
type SiteInput struct {
	Name            *string `json:"name,omitempty" jsonschema:"site name"`
	Tagline         *string `json:"tagline,omitempty" jsonschema:"short tagline shown in the header"`
	LogoURL         *string `json:"logo_url,omitempty" jsonschema:"logo image URL"`
	PrimaryColor    *string `json:"primary_color,omitempty" jsonschema:"hex colour such as #4F46E5"`
	SecondaryColor  *string `json:"secondary_color,omitempty" jsonschema:"hex colour"`
	BackgroundColor *string `json:"background_color,omitempty" jsonschema:"hex colour"`
	TextColor       *string `json:"text_color,omitempty" jsonschema:"hex colour"`
	HeadingFont     *string `json:"heading_font,omitempty" jsonschema:"font family for headings"`
	BodyFont        *string `json:"body_font,omitempty" jsonschema:"font family for body text"`
	ShowHeader      *bool   `json:"show_header,omitempty" jsonschema:"render the site header"`
	ShowFooter      *bool   `json:"show_footer,omitempty" jsonschema:"render the site footer"`
}

// SiteOutput is the output schema for the site tools.
type SiteOutput struct {
	Site domain.SiteSettings `json:"site"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_component",
		Description: "Add a component from its template and select it",
	}, s.handleAdd)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_component",
		Description: "Remove a component and everything nested inside it",
	}, s.handleRemove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "duplicate_component",
		Description: "Clone a component to the end of the page and select the copy",
	}, s.handleDuplicate)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "copy_component",
		Description: "Copy a component to the builder clipboard",
	}, s.handleCopy)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "paste_component",
		Description: "Paste the clipboard component at the end of the page",
	}, s.handlePaste)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reorder_components",
		Description: "Move the component at one position to another",
	}, s.handleReorder)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "move_component",
		Description: "Move a component to a position in the page",
	}, s.handleMove)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "patch_styles",
		Description: "Merge style values into a component",
	}, s.handlePatchStyles)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "patch_content",
		Description: "Merge content values into a component",
	}, s.handlePatchContent)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_component",
		Description: "Change the display name of a component",
	}, s.handleRename)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_lock",
		Description: "Lock or unlock a component against structural changes",
	}, s.handleToggleLock)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_visibility",
		Description: "Hide or show a component in the preview",
	}, s.handleToggleVisibility)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_page",
		Description: "Remove every component from the page",
	}, s.handleClear)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "undo",
		Description: "Step back one history snapshot",
	}, s.handleUndo)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "redo",
		Description: "Step forward one history snapshot",
	}, s.handleRedo)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_component",
		Description: "Select a component, or clear the selection",
	}, s.handleSelect)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hover_component",
		Description: "Mark a component as hovered, or clear the hover",
	}, s.handleHover)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_zoom",
		Description: "Set the canvas zoom percentage",
	}, s.handleSetZoom)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_device",
		Description: "Set the preview device",
	}, s.handleSetDevice)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page",
		Description: "Return the current page and session state",
	}, s.handleGetPage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_component",
		Description: "Return a single component",
	}, s.handleGetComponent)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the component types that can be added",
	}, s.handleListTemplates)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_site",
		Description: "Return the site branding settings",
	}, s.handleGetSite)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_site",
		Description: "Change site branding settings",
	}, s.handleUpdateSite)
}

// session reports the builder as of a single instant, so concurrent HTTP
// calls never mix fields from different states.
func (s *Server) session(id string) SessionOutput {
	snap := s.ports.Builder.Snapshot()
	return SessionOutput{
		ID:           id,
		Components:   snap.Document.Components,
		Selected:     snap.Selected,
		Hovered:      snap.Hovered,
		Viewport:     snap.Viewport,
		History:      snap.History,
		CanUndo:      snap.History.CanUndo(),
		CanRedo:      snap.History.CanRedo(),
		HasClipboard: snap.HasClipboard,
	}
}

// run executes a builder command and reports the session afterwards.
func (s *Server) run(tool string, fn func() (string, error)) (*mcp.CallToolResult, SessionOutput, error) {
	id, err := fn()
	if err != nil {
		return nil, SessionOutput{}, fmt.Errorf("%s: %w", tool, err)
	}
	logger.Debug("mcp: %s ok", tool)
	return nil, s.session(id), nil
}

func (s *Server) toggle(tool string, fn func() (bool, error)) (*mcp.CallToolResult, SessionOutput, error) {
	value, err := fn()
	if err != nil {
		return nil, SessionOutput{}, fmt.Errorf("%s: %w", tool, err)
	}
	out := s.session("")
	out.Flag = &value
	return nil, out, nil
}

func noID(err error) (string, error) {
	return "", err
}

func (s *Server) handleAdd(
	_ context.Context, _ *mcp.CallToolRequest, input AddInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("add_component", func() (string, error) {
		return s.ports.Builder.Add(domain.ComponentType(input.Type), input.ParentID)
	})
}

func (s *Server) handleRemove(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("remove_component", func() (string, error) {
		return noID(s.ports.Builder.Remove(input.ID))
	})
}

func (s *Server) handleDuplicate(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("duplicate_component", func() (string, error) {
		return s.ports.Builder.Duplicate(input.ID)
	})
}

func (s *Server) handleCopy(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("copy_component", func() (string, error) {
		return noID(s.ports.Builder.CopyToClipboard(input.ID))
	})
}

func (s *Server) handlePaste(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("paste_component", s.ports.Builder.PasteFromClipboard)
}

func (s *Server) handleReorder(
	_ context.Context, _ *mcp.CallToolRequest, input ReorderInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("reorder_components", func() (string, error) {
		return noID(s.ports.Builder.Reorder(input.From, input.To))
	})
}

func (s *Server) handleMove(
	_ context.Context, _ *mcp.CallToolRequest, input MoveInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("move_component", func() (string, error) {
		return noID(s.ports.Builder.Move(input.ID, input.To))
	})
}

func (s *Server) handlePatchStyles(
	_ context.Context, _ *mcp.CallToolRequest, input PatchInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("patch_styles", func() (string, error) {
		return noID(s.ports.Builder.PatchStyles(input.ID, domain.Styles(input.Values)))
	})
}

func (s *Server) handlePatchContent(
	_ context.Context, _ *mcp.CallToolRequest, input PatchInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("patch_content", func() (string, error) {
		return noID(s.ports.Builder.PatchContent(input.ID, domain.Content(input.Values)))
	})
}

func (s *Server) handleRename(
	_ context.Context, _ *mcp.CallToolRequest, input RenameInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("rename_component", func() (string, error) {
		return noID(s.ports.Builder.Rename(input.ID, input.Name))
	})
}

func (s *Server) handleToggleLock(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.toggle("toggle_lock", func() (bool, error) {
		return s.ports.Builder.ToggleLock(input.ID)
	})
}

func (s *Server) handleToggleVisibility(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.toggle("toggle_visibility", func() (bool, error) {
		return s.ports.Builder.ToggleVisibility(input.ID)
	})
}

func (s *Server) handleClear(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("clear_page", func() (string, error) {
		return noID(s.ports.Builder.Clear())
	})
}

func (s *Server) handleUndo(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("undo", func() (string, error) {
		return noID(s.ports.Builder.Undo())
	})
}

func (s *Server) handleRedo(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("redo", func() (string, error) {
		return noID(s.ports.Builder.Redo())
	})
}

func (s *Server) handleSelect(
	_ context.Context, _ *mcp.CallToolRequest, input TrackInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("select_component", func() (string, error) {
		return noID(s.ports.Builder.Select(input.ID))
	})
}

func (s *Server) handleHover(
	_ context.Context, _ *mcp.CallToolRequest, input TrackInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("hover_component", func() (string, error) {
		return noID(s.ports.Builder.Hover(input.ID))
	})
}

func (s *Server) handleSetZoom(
	_ context.Context, _ *mcp.CallToolRequest, input ZoomInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("set_zoom", func() (string, error) {
		s.ports.Builder.SetZoom(input.Zoom)
		return "", nil
	})
}

func (s *Server) handleSetDevice(
	_ context.Context, _ *mcp.CallToolRequest, input DeviceInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return s.run("set_device", func() (string, error) {
		return noID(s.ports.Builder.SetDevice(domain.DeviceMode(input.Device)))
	})
}

func (s *Server) handleGetPage(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	return nil, s.session(""), nil
}

func (s *Server) handleGetComponent(
	_ context.Context, _ *mcp.CallToolRequest, input IDInput,
) (*mcp.CallToolResult, ComponentOutput, error) {
	c, err := s.ports.Builder.Component(input.ID)
	if err != nil {
		return nil, ComponentOutput{}, fmt.Errorf("get_component: %w", err)
	}
	return nil, ComponentOutput{Component: c}, nil
}

func (s *Server) handleListTemplates(
	_ context.Context, _ *mcp.CallToolRequest, input TemplatesInput,
) (*mcp.CallToolResult, TemplatesOutput, error) {
	list := s.ports.Templates.List()
	if input.Category != "" {
		filtered := make([]domain.Template, 0, len(list))
		for _, tmpl := range list {
			if tmpl.Category == input.Category {
				filtered = append(filtered, tmpl)
			}
		}
		list = filtered
	}
	return nil, TemplatesOutput{Templates: list, Count: len(list)}, nil
}

func (s *Server) handleGetSite(
	_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput,
) (*mcp.CallToolResult, SiteOutput, error) {
	if s.ports.Site == nil {
		return nil, SiteOutput{}, ErrSiteUnavailable
	}
	settings, err := s.ports.Site.Get()
	if err != nil {
		return nil, SiteOutput{}, fmt.Errorf("get_site: %w", err)
	}
	return nil, SiteOutput{Site: *settings}, nil
}

func (s *Server) handleUpdateSite(
	_ context.Context, _ *mcp.CallToolRequest, input SiteInput,
) (*mcp.CallToolResult, SiteOutput, error) {
	if s.ports.Site == nil {
		return nil, SiteOutput{}, ErrSiteUnavailable
	}
	settings, err := s.ports.Site.Update(input.apply)
	if err != nil {
		return nil, SiteOutput{}, fmt.Errorf("update_site: %w", err)
	}
	logger.Debug("mcp: update_site ok")
	return nil, SiteOutput{Site: *settings}, nil
}

func (in SiteInput) apply(s *domain.SiteSettings) {
	setString(&s.Name, in.Name)
	setString(&s.Tagline, in.Tagline)
	setString(&s.LogoURL, in.LogoURL)
	setString(&s.PrimaryColor, in.PrimaryColor)
	setString(&s.SecondaryColor, in.SecondaryColor)
	setString(&s.BackgroundColor, in.BackgroundColor)
	setString(&s.TextColor, in.TextColor)
	setString(&s.HeadingFont, in.HeadingFont)
	setString(&s.BodyFont, in.BodyFont)
	if in.ShowHeader != nil {
		s.ShowHeader = *in.ShowHeader
	}
	if in.ShowFooter != nil {
		s.ShowFooter = *in.ShowFooter
	}
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}
