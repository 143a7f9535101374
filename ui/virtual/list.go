// Package virtual renders long lists and grids by computing only the window
// of items that covers the viewport.
//
// A List virtualizes rows along one axis; a Grid virtualizes rows and
// columns independently against the same scroll container. Row sizes may be
// fixed or estimated: estimated rows are measured once the host renders
// them (MeasureRow), and when a measured row sits above the viewport the
// scroll position is corrected by the size difference so nothing visibly
// jumps.
//
// Everything runs on the host's event-loop goroutine. Scroll events are
// coalesced through a frame.Loop into at most one recomputation per frame;
// the host flushes the loop from its frame callback (see frame.Loop.Wake
// for bubbletea).
package virtual

import (
	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/host"
)

// ListWindow is what a List asks the host to render.
type ListWindow struct {
	Rows        []axis.Slot
	StartIndex  int
	EndIndex    int
	TotalHeight float64
	IsScrolling bool
}

// List virtualizes rows of a vertically scrolling container.
type List struct {
	*core
	rows axis.Window
}

// NewList validates opts and computes the initial window. It fails with an
// error wrapping measure.ErrNoSizeFunc or measure.ErrAmbiguousSize unless
// exactly one of WithRowHeight and WithEstimateRowHeight is given.
func NewList(opts ...Option) (*List, error) {
	c, err := newCore("list", applyOptions(opts))
	if err != nil {
		return nil, err
	}
	l := &List{core: c}
	c.recompute = l.recompute
	c.attach()
	l.recompute()
	return l, nil
}

// Window returns the current window.
func (l *List) Window() ListWindow {
	return ListWindow{
		Rows:        l.rows.Visible(),
		StartIndex:  l.rows.StartIndex,
		EndIndex:    l.rows.EndIndex,
		TotalHeight: l.rows.TotalExtent,
		IsScrolling: l.tracker.Scrolling(),
	}
}

// Layout returns every row slot, including those outside the window.
func (l *List) Layout() axis.Window { return l.rows }

// MeasureRow reads the settled size of a rendered row and watches it for
// resizes. The host calls it once per rendered row with the row's root
// element, which must carry host.IndexAttr. The returned error is a
// diagnostic; the report has already been dropped.
func (l *List) MeasureRow(el host.Element) error { return l.measureRow(el) }

// IsScrolling reports whether the container scrolled within the scrolling
// delay.
func (l *List) IsScrolling() bool { return l.tracker.Scrolling() }

// ScrollOffset is the scroll position the current window was computed for,
// including compensation not yet written to the container.
func (l *List) ScrollOffset() float64 { return l.rowVP.offset }

// Measured returns the cached measured height of the row with key.
func (l *List) Measured(key string) (float64, bool) { return l.cache.Get(key) }

// MeasuredCount returns how many rows have a cached measurement.
func (l *List) MeasuredCount() int { return l.cache.Len() }

// Loop returns the frame loop the List schedules on.
func (l *List) Loop() *frame.Loop { return l.loop }

// SetRowsCount changes the number of rows and recomputes.
func (l *List) SetRowsCount(n int) {
	l.o.rowsCount = max(0, n)
	l.Refresh()
}

// SetRowKey changes row identity and recomputes. Rows keep their measured
// size across reorders as long as their key is unchanged.
func (l *List) SetRowKey(fn axis.KeyFunc) {
	l.o.rowKey = fn
	l.Refresh()
}

// Refresh re-reads the scroll container, attaching to it if it appeared or
// changed, and recomputes the window synchronously.
func (l *List) Refresh() {
	if l.closed {
		return
	}
	l.attach()
	l.recompute()
}

// Close disconnects every observer and cancels pending work. No callback
// fires afterwards.
func (l *List) Close() { l.close() }

func (l *List) recompute() {
	if l.closed {
		return
	}
	l.rows = l.computeRows()
	l.logger.Debug("window recomputed",
		"start", l.rows.StartIndex,
		"end", l.rows.EndIndex,
		"total", l.rows.TotalExtent,
		"scrollTop", l.rowVP.offset)
	l.notify()
}
