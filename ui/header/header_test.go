package header

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestItems_Thousands(t *testing.T) {
	cases := map[int]string{
		0:       "0 rows",
		999:     "999 rows",
		1000:    "1,000 rows",
		1234567: "1,234,567 rows",
		-4200:   "-4,200 rows",
	}
	for n, want := range cases {
		if got := Items(n, "rows"); got != want {
			t.Errorf("Items(%d) want %q, got %q", n, want, got)
		}
	}
}

func TestView_ContainsDemo(t *testing.T) {
	m := NewHeader("v1")
	m.SetDemo("grid", "10 × 20 cells")
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "grid") || !strings.Contains(out, "10 × 20 cells") {
		t.Errorf("header missing demo info: %q", out)
	}
}

func TestView_TruncatesToWidth(t *testing.T) {
	m := NewHeader("v1")
	m.SetDemo("list", "1,000,000 rows")
	m.SetWidth(12)
	if w := lipgloss.Width(m.View()); w > 12 {
		t.Errorf("want width <= 12, got %d", w)
	}
}
