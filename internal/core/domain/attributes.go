package domain

// Well-known Content keys. Which keys are meaningful depends on the component type.
const (
	ContentText        = "text"
	ContentLevel       = "level"
	ContentHref        = "href"
	ContentTarget      = "target"
	ContentSrc         = "src"
	ContentAlt         = "alt"
	ContentPoster      = "poster"
	ContentAutoplay    = "autoplay"
	ContentIcon        = "icon"
	ContentItems       = "items"
	ContentOrdered     = "ordered"
	ContentHTML        = "html"
	ContentLabel       = "label"
	ContentPlaceholder = "placeholder"
	ContentInputType   = "inputType"
	ContentRequired    = "required"
	ContentAction      = "action"
	ContentColumns     = "columns"
	ContentChildren    = "children"
)

// Well-known Styles keys.
const (
	StylePadding         = "padding"
	StyleMargin          = "margin"
	StyleWidth           = "width"
	StyleHeight          = "height"
	StyleColor           = "color"
	StyleBackgroundColor = "backgroundColor"
	StyleBorderWidth     = "borderWidth"
	StyleBorderColor     = "borderColor"
	StyleBorderRadius    = "borderRadius"
	StyleFontSize        = "fontSize"
	StyleFontWeight      = "fontWeight"
	StyleFontFamily      = "fontFamily"
	StyleTextAlign       = "textAlign"
	StyleDisplay         = "display"
	StyleGap             = "gap"
	StyleShadow          = "boxShadow"
	StyleOpacity         = "opacity"
	StyleAnimation       = "animation"
)

// Content is the variant-shaped attribute bag of a component.
type Content map[string]any

// Styles is the presentation attribute bag of a component.
type Styles map[string]any

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	if c == nil {
		return Content{}
	}
	return Content(cloneMap(c))
}

// Merge shallow-merges patch into a copy of c and returns it.
// A nil value in the patch deletes the key.
func (c Content) Merge(patch Content) Content {
	return Content(mergeMap(c, patch))
}

// GetString returns the value stored under key if it is a string.
func (c Content) GetString(key string) string {
	s, _ := c[key].(string)
	return s
}

// GetStrings returns the value stored under key as a string slice.
// YAML and JSON decode lists as []any, so both shapes are accepted.
func (c Content) GetStrings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Children returns the declared child ids.
func (c Content) Children() []string {
	return c.GetStrings(ContentChildren)
}

// Clone returns a deep copy of the styles.
func (s Styles) Clone() Styles {
	if s == nil {
		return Styles{}
	}
	return Styles(cloneMap(s))
}

// Merge shallow-merges patch into a copy of s and returns it.
// A nil value in the patch deletes the key.
func (s Styles) Merge(patch Styles) Styles {
	return Styles(mergeMap(s, patch))
}

func mergeMap(base, patch map[string]any) map[string]any {
	out := cloneMap(base)
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Content:
		return Content(cloneMap(t))
	case Styles:
		return Styles(cloneMap(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
