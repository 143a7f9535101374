// Package status provides the bottom status bar of the demo shells. It
// renders the current window, total extent, measurement progress and the
// scrolling indicator.
package status

import (
	"fmt"
	"strings"

	"github.com/miosa/osa-virtual/style"
)

// Stats is one snapshot of a virtualizer as the status bar shows it.
type Stats struct {
	Start, End int // window bounds, -1 when empty
	Count      int
	// Columns are zero for lists.
	ColStart, ColEnd int
	Columns          int

	Offset    float64
	Total     float64
	Measured  int
	Windows   int // windows published so far
	Scrolling bool
	Frame     uint64 // advances the scrolling spinner
}

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	stats Stats
	width int
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetStats replaces the displayed snapshot.
func (m *Model) SetStats(s Stats) { m.stats = s }

// SetWidth sets the width the bar may use.
func (m *Model) SetWidth(w int) { m.width = w }

// Stats returns the displayed snapshot.
func (m Model) Stats() Stats { return m.stats }

// View renders the status line, dropping pills from the right until it fits.
func (m Model) View() string {
	s := m.stats
	pills := []string{RangePill("rows", s.Start, s.End, s.Count)}
	if s.Columns > 0 {
		pills = append(pills, RangePill("cols", s.ColStart, s.ColEnd, s.Columns))
	}
	pills = append(pills,
		ValuePill("offset", fmt.Sprintf("%.0f/%.0f", s.Offset, s.Total)),
		ValuePill("measured", fmt.Sprintf("%d", s.Measured)),
		ValuePill("windows", fmt.Sprintf("%d", s.Windows)),
		ScrollingPill(s.Scrolling, s.Frame),
	)

	sep := style.StatusBar.Render("  ")
	line := strings.Join(pills, sep)
	for m.width > 0 && len(pills) > 1 && visibleWidth(line) > m.width {
		pills = pills[:len(pills)-1]
		line = strings.Join(pills, sep)
	}
	return line
}
