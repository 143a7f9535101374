package markdown

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRender_EmptyPassesThrough(t *testing.T) {
	r := New("notty")
	if got := r.Render("  ", 40); got != "  " {
		t.Errorf("want blank input unchanged, got %q", got)
	}
}

func TestRender_WrapsAtWidth(t *testing.T) {
	r := New("notty")
	md := strings.Repeat("word ", 40)
	out := r.Render(md, 20)
	if lipgloss.Height(out) < 2 {
		t.Errorf("want wrapped output, got %d lines", lipgloss.Height(out))
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("want trailing newlines trimmed")
	}
}

func TestRender_CachesPerWidth(t *testing.T) {
	r := New("")
	r.Render("# hi", 30)
	r.Render("# hi", 30)
	r.Render("# hi", 50)
	if len(r.renderers) != 2 {
		t.Errorf("want 2 cached renderers, got %d", len(r.renderers))
	}
	r.SetStyle("light")
	if len(r.renderers) != 0 {
		t.Error("want cache dropped on style change")
	}
}
