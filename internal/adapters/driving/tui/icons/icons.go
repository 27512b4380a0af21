// Package icons maps icon keys to terminal glyphs.
//
// The set is closed. Keys outside it render as Fallback so an unknown key is
// visible on the canvas instead of silently blank.
package icons

// Fallback is shown for unrecognised icon keys.
const Fallback = "◇"

var glyphs = map[string]string{
	// Palette icons.
	"heading":   "H",
	"paragraph": "¶",
	"type":      "T",
	"link":      "↗",
	"list":      "≡",
	"image":     "▣",
	"video":     "▶",
	"code":      "‹›",
	"box":       "□",
	"layout":    "▤",
	"columns":   "▥",
	"spacer":    "↕",
	"minus":     "─",
	"button":    "◉",
	"form":      "▦",
	"input":     "▭",

	// Icon component values.
	"star":        "★",
	"heart":       "♥",
	"check":       "✓",
	"arrow-right": "→",
	"mail":        "✉",
	"phone":       "☎",
	"map-pin":     "⌖",
	"briefcase":   "▰",
	"users":       "☺",
	"globe":       "◍",
	"clock":       "◷",
}

// Glyph returns the glyph for key, or Fallback.
func Glyph(key string) string {
	if g, ok := glyphs[key]; ok {
		return g
	}
	return Fallback
}

// Known reports whether key is in the registry.
func Known(key string) bool {
	_, ok := glyphs[key]
	return ok
}
