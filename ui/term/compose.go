package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Block is a run of lines placed at content coordinates (X, Y).
type Block struct {
	X, Y  float64
	Lines []string
}

// Compose paints blocks into a width×height viewport scrolled to (top, left)
// and returns exactly height lines, each padded to width cells. Lines and
// blocks outside the viewport are clipped; ANSI sequences survive cutting.
func Compose(width, height int, top, left float64, blocks []Block) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := make([]string, height)
	t, l := int(math.Floor(top)), int(math.Floor(left))

	for _, b := range blocks {
		y0 := int(math.Floor(b.Y)) - t
		x0 := int(math.Floor(b.X)) - l
		if y0 >= height || y0+len(b.Lines) <= 0 || x0 >= width {
			continue
		}
		for j, line := range b.Lines {
			y := y0 + j
			if y < 0 {
				continue
			}
			if y >= height {
				break
			}
			canvas[y] = clipLine(line, x0, width)
		}
	}

	for i, line := range canvas {
		canvas[i] = padLine(line, width)
	}
	return strings.Join(canvas, "\n")
}

// clipLine shifts line to start at column x0 of a width-cell viewport.
func clipLine(line string, x0, width int) string {
	if x0 >= 0 {
		return strings.Repeat(" ", x0) + ansi.Truncate(line, width-x0, "")
	}
	return ansi.Cut(line, -x0, -x0+width)
}

func padLine(line string, width int) string {
	w := ansi.StringWidth(line)
	if w >= width {
		return line
	}
	return line + strings.Repeat(" ", width-w)
}

// FitCell truncates or pads s to exactly width cells on every line.
func FitCell(s string, width int) []string {
	lines := splitLines(s)
	for i, line := range lines {
		lines[i] = padLine(ansi.Truncate(line, width, ""), width)
	}
	return lines
}

// JoinCells lays cells side by side into lines, padding short cells with
// blank lines of their own width. widths[i] is the width of cells[i].
func JoinCells(cells [][]string, widths []int) []string {
	h := 0
	for _, c := range cells {
		h = max(h, len(c))
	}
	out := make([]string, h)
	for y := range out {
		var sb strings.Builder
		for i, c := range cells {
			if y < len(c) {
				sb.WriteString(c[y])
			} else {
				sb.WriteString(strings.Repeat(" ", widths[i]))
			}
		}
		out[y] = sb.String()
	}
	return out
}

// ---------------------------------------------------------------------------
// String helpers
// ---------------------------------------------------------------------------

// splitLines splits a rendered string into individual lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
