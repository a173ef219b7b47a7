package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Glamour standard style names.
const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownPlain = "notty"
)

// MarkdownRenderer renders Markdown for the terminal and rebuilds the
// underlying renderer only when the wrap width changes.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = MarkdownDark
	}
	return &MarkdownRenderer{style: style}
}

// Render returns styled text. Rendering failures fall back to the raw
// Markdown.
func (r *MarkdownRenderer) Render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	width = max(width, 24)

	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = width
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// MarkdownStyleFor picks the glamour style matching a color theme key.
func MarkdownStyleFor(themeKey string, tty bool) string {
	switch {
	case !tty:
		return MarkdownPlain
	case themeKey == "dark":
		return MarkdownDark
	default:
		return MarkdownLight
	}
}
