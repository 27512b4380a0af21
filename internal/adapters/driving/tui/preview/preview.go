// Package preview renders a page document as terminal text.
//
// Each component type has one renderer in a closed registry. Types without
// a renderer use a fallback that prints the type name, so nothing on the
// page is silently dropped.
package preview

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/icons"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

// Device widths in terminal cells at 100% zoom.
var deviceCells = map[domain.DeviceMode]int{
	domain.DeviceDesktop: 80,
	domain.DeviceTablet:  48,
	domain.DeviceMobile:  24,
}

const minWidth = 12

// Width returns the preview width for a viewport, limited to available cells.
func Width(vp domain.Viewport, available int) int {
	base, ok := deviceCells[vp.Device]
	if !ok {
		base = deviceCells[domain.DeviceDesktop]
	}
	w := base * domain.ClampZoom(vp.Zoom) / 100
	if w > available {
		w = available
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}

type renderer func(c domain.Component, width int, s *styles.Styles) string

var renderers = map[domain.ComponentType]renderer{
	domain.ComponentHeading:   renderHeading,
	domain.ComponentParagraph: renderText,
	domain.ComponentText:      renderText,
	domain.ComponentLink:      renderLink,
	domain.ComponentList:      renderList,
	domain.ComponentImage:     renderMedia("image"),
	domain.ComponentVideo:     renderMedia("video"),
	domain.ComponentIcon:      renderIcon,
	domain.ComponentEmbed:     renderEmbed,
	domain.ComponentContainer: renderContainer,
	domain.ComponentSection:   renderContainer,
	domain.ComponentColumns:   renderContainer,
	domain.ComponentForm:      renderContainer,
	domain.ComponentSpacer:    renderSpacer,
	domain.ComponentDivider:   renderDivider,
	domain.ComponentButton:    renderButton,
	domain.ComponentInput:     renderInput,
}

// Component renders a single component, ignoring its children.
func Component(c domain.Component, width int, s *styles.Styles) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if width < minWidth {
		width = minWidth
	}
	render, ok := renderers[c.Type]
	if !ok {
		render = renderFallback
	}
	return render(c, width, s)
}

// Page renders the site header, every visible component in tree order and
// the site footer. Hidden components and their descendants are skipped.
func Page(doc domain.Document, site *domain.SiteSettings, width int, s *styles.Styles) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if width < minWidth {
		width = minWidth
	}
	var blocks []string
	if site != nil && site.ShowHeader {
		header := s.Title.Render(truncate.StringWithTail(site.Name, uint(width), "…"))
		if site.Tagline != "" {
			header += "\n" + s.Muted.Render(wordwrap.String(site.Tagline, width))
		}
		blocks = append(blocks, header, s.Muted.Render(strings.Repeat("─", width)))
	}

	children := doc.ChildIndex()
	visited := make(map[string]bool, doc.Len())
	rendered := 0
	var walk func(c domain.Component, depth int)
	walk = func(c domain.Component, depth int) {
		if visited[c.ID] || c.IsHidden {
			return
		}
		visited[c.ID] = true
		rendered++
		pad := depth * 2
		blocks = append(blocks, indent.String(Component(c, width-pad, s), uint(pad)))
		for _, id := range children[c.ID] {
			if child, ok := doc.Get(id); ok {
				walk(child, depth+1)
			}
		}
	}
	for _, root := range doc.Roots() {
		walk(root, 0)
	}
	if rendered == 0 {
		blocks = append(blocks, s.Muted.Render("Empty page. Press a to add a component."))
	}

	if site != nil && site.ShowFooter {
		blocks = append(blocks,
			s.Muted.Render(strings.Repeat("─", width)),
			s.Muted.Render(truncate.StringWithTail("© "+site.Name, uint(width), "…")))
	}
	return strings.Join(blocks, "\n")
}

func renderHeading(c domain.Component, width int, s *styles.Styles) string {
	text := wordwrap.String(c.Content.GetString(domain.ContentText), width)
	if level(c.Content) <= 1 {
		text = strings.ToUpper(text)
	}
	return s.Title.Render(text)
}

func renderText(c domain.Component, width int, s *styles.Styles) string {
	return s.Normal.Render(wordwrap.String(c.Content.GetString(domain.ContentText), width))
}

func renderLink(c domain.Component, width int, s *styles.Styles) string {
	text := c.Content.GetString(domain.ContentText)
	href := c.Content.GetString(domain.ContentHref)
	line := s.Hovered.Render(wordwrap.String(text+" "+icons.Glyph("link"), width))
	if href != "" {
		line += "\n" + s.Muted.Render(truncate.StringWithTail(href, uint(width), "…"))
	}
	return line
}

func renderList(c domain.Component, width int, s *styles.Styles) string {
	items := c.Content.GetStrings(domain.ContentItems)
	if len(items) == 0 {
		return s.Muted.Render("(empty list)")
	}
	ordered, _ := c.Content[domain.ContentOrdered].(bool)
	lines := make([]string, 0, len(items))
	for i, item := range items {
		bullet := "• "
		if ordered {
			bullet = fmt.Sprintf("%d. ", i+1)
		}
		wrapped := wordwrap.String(item, width-len(bullet))
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", len(bullet)))
		lines = append(lines, bullet+wrapped)
	}
	return s.Normal.Render(strings.Join(lines, "\n"))
}

func renderMedia(kind string) renderer {
	return func(c domain.Component, width int, s *styles.Styles) string {
		label := c.Content.GetString(domain.ContentAlt)
		if label == "" {
			label = kind
		}
		src := c.Content.GetString(domain.ContentSrc)
		if src == "" {
			src = "(no source)"
		}
		box := s.Border.Width(width - 2).Render(icons.Glyph(kind) + " " + label)
		return box + "\n" + s.Muted.Render(truncate.StringWithTail(src, uint(width), "…"))
	}
}

func renderIcon(c domain.Component, _ int, s *styles.Styles) string {
	return s.Subtitle.Render(icons.Glyph(c.Content.GetString(domain.ContentIcon)))
}

func renderEmbed(c domain.Component, width int, s *styles.Styles) string {
	html := c.Content.GetString(domain.ContentHTML)
	if html == "" {
		return s.Muted.Render(icons.Glyph("code") + " (empty embed)")
	}
	return s.Muted.Render(truncate.StringWithTail(icons.Glyph("code")+" "+html, uint(width), "…"))
}

func renderContainer(c domain.Component, width int, s *styles.Styles) string {
	label := fmt.Sprintf("┌ %s: %s", c.Type, c.Name)
	return s.Muted.Render(truncate.StringWithTail(label, uint(width), "…"))
}

func renderSpacer(_ domain.Component, _ int, _ *styles.Styles) string {
	return ""
}

func renderDivider(_ domain.Component, width int, s *styles.Styles) string {
	return s.Muted.Render(strings.Repeat("─", width))
}

func renderButton(c domain.Component, width int, s *styles.Styles) string {
	text := truncate.StringWithTail(c.Content.GetString(domain.ContentText), uint(width-4), "…")
	return s.Selected.Render("[ " + text + " ]")
}

func renderInput(c domain.Component, width int, s *styles.Styles) string {
	label := c.Content.GetString(domain.ContentLabel)
	if req, _ := c.Content[domain.ContentRequired].(bool); req {
		label += " *"
	}
	placeholder := c.Content.GetString(domain.ContentPlaceholder)
	field := s.InputField.Width(width - 2).Render(s.Muted.Render(placeholder))
	return s.Normal.Render(label) + "\n" + field
}

func renderFallback(c domain.Component, width int, s *styles.Styles) string {
	return s.Warning.Render(truncate.StringWithTail(fmt.Sprintf("%s [%s]", icons.Fallback, c.Type), uint(width), "…"))
}

// level reads the heading level, which YAML and JSON may decode as int or float.
func level(c domain.Content) int {
	switch v := c[domain.ContentLevel].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 2
	}
}
