package common

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestScrollbar_HiddenWhenContentFits(t *testing.T) {
	if got := Scrollbar(10, 10, 0); got != "" {
		t.Errorf("want empty scrollbar, got %q", got)
	}
	if got := HScrollbar(10, 4, 0); got != "" {
		t.Errorf("want empty scrollbar, got %q", got)
	}
}

func TestScrollbar_ThumbTracksOffset(t *testing.T) {
	rows := strings.Split(ansi.Strip(Scrollbar(4, 16, 12)), "\n")
	if len(rows) != 4 {
		t.Fatalf("want 4 rows, got %d", len(rows))
	}
	if rows[3] != scrollThumbChar || rows[0] != scrollTrackChar {
		t.Errorf("want thumb at the bottom, got %q", rows)
	}
}

func TestHScrollbar_Width(t *testing.T) {
	bar := ansi.Strip(HScrollbar(10, 40, 15))
	if w := ansi.StringWidth(bar); w != 10 {
		t.Errorf("want width 10, got %d", w)
	}
	if !strings.HasPrefix(bar, hScrollTrackChar) {
		t.Errorf("want track before the thumb, got %q", bar)
	}
}
