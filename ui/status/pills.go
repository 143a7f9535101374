package status

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/style"
)

// RangePill renders a window range, e.g. "rows 12–40/1000".
// An empty window renders as "rows –/0".
func RangePill(label string, start, end, total int) string {
	if start < 0 || end < 0 {
		return style.StatusKey.Render(label+" ") + style.StatusValue.Render(fmt.Sprintf("–/%d", total))
	}
	return style.StatusKey.Render(label+" ") + style.StatusValue.Render(fmt.Sprintf("%d–%d/%d", start, end, total))
}

// ValuePill renders "label value".
func ValuePill(label, value string) string {
	return style.StatusKey.Render(label+" ") + style.StatusValue.Render(value)
}

// spinnerFrames is the Braille-dot sequence shown while scrolling.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ScrollingPill renders the scrolling indicator. frame picks the spinner
// glyph; pass the frame loop's counter so it animates at the frame rate.
func ScrollingPill(scrolling bool, frame uint64) string {
	if scrolling {
		glyph := spinnerFrames[frame%uint64(len(spinnerFrames))]
		return style.StatusScrolling.Render(glyph + " scrolling")
	}
	return style.StatusIdle.Render("○ idle")
}

func visibleWidth(s string) int { return lipgloss.Width(s) }
