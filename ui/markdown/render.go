// Package markdown renders list demo rows with glamour. A row's height is
// only known after rendering at the pane width, which is what makes the
// list demo exercise estimated row heights.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer caches one glamour renderer per wrap width.
type Renderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// New returns a Renderer using one of glamour's standard styles ("dark",
// "light", "notty"...). An empty style means "dark".
func New(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// SetStyle switches the glamour style and drops cached renderers.
func (r *Renderer) SetStyle(style string) {
	if style == r.style {
		return
	}
	r.style = style
	r.renderers = make(map[int]*glamour.TermRenderer)
}

// Render converts md to styled ANSI output wrapped at width.
// Falls back to raw text if glamour fails.
func (r *Renderer) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" || width <= 0 {
		return md
	}
	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderers[width] = tr
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	// glamour adds surrounding newlines; trim for row display.
	return strings.Trim(out, "\n")
}
