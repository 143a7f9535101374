package virtual

import (
	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/host"
)

// GridWindow is what a Grid asks the host to render: every row in Rows
// crossed with every column in Columns.
type GridWindow struct {
	Rows        []axis.Slot
	Columns     []axis.Slot
	RowStart    int
	RowEnd      int
	ColumnStart int
	ColumnEnd   int
	TotalHeight float64
	TotalWidth  float64
	IsScrolling bool
}

// Cells returns the number of cells in the window.
func (w GridWindow) Cells() int { return len(w.Rows) * len(w.Columns) }

// Grid virtualizes rows and columns of a container scrolling on both axes.
// Rows behave exactly like a List; columns have fixed widths and follow the
// horizontal scroll position.
type Grid struct {
	*core
	rows axis.Window
	cols axis.Window
}

// NewGrid validates opts and computes the initial window. Besides the row
// size errors of NewList it returns ErrNoColumnWidth when WithColumnWidth is
// missing.
func NewGrid(opts ...Option) (*Grid, error) {
	o := applyOptions(opts)
	if o.columnWidth == nil {
		return nil, ErrNoColumnWidth
	}
	c, err := newCore("grid", o)
	if err != nil {
		return nil, err
	}
	g := &Grid{core: c}
	c.recompute = g.recompute
	c.attach()
	g.recompute()
	return g, nil
}

// Window returns the current window.
func (g *Grid) Window() GridWindow {
	return GridWindow{
		Rows:        g.rows.Visible(),
		Columns:     g.cols.Visible(),
		RowStart:    g.rows.StartIndex,
		RowEnd:      g.rows.EndIndex,
		ColumnStart: g.cols.StartIndex,
		ColumnEnd:   g.cols.EndIndex,
		TotalHeight: g.rows.TotalExtent,
		TotalWidth:  g.cols.TotalExtent,
		IsScrolling: g.tracker.Scrolling(),
	}
}

// RowLayout returns every row slot.
func (g *Grid) RowLayout() axis.Window { return g.rows }

// ColumnLayout returns every column slot.
func (g *Grid) ColumnLayout() axis.Window { return g.cols }

// MeasureRow reads the settled height of a rendered row; see List.MeasureRow.
// Any one element per row will do, typically the row's wrapper.
func (g *Grid) MeasureRow(el host.Element) error { return g.measureRow(el) }

// IsScrolling reports whether the container scrolled within the scrolling
// delay.
func (g *Grid) IsScrolling() bool { return g.tracker.Scrolling() }

// ScrollOffset returns the scroll position the current window was computed
// for on both axes.
func (g *Grid) ScrollOffset() (top, left float64) { return g.rowVP.offset, g.colVP.offset }

// Measured returns the cached measured height of the row with key.
func (g *Grid) Measured(key string) (float64, bool) { return g.cache.Get(key) }

// MeasuredCount returns how many rows have a cached measurement.
func (g *Grid) MeasuredCount() int { return g.cache.Len() }

// Loop returns the frame loop the Grid schedules on.
func (g *Grid) Loop() *frame.Loop { return g.loop }

// SetRowsCount changes the number of rows and recomputes.
func (g *Grid) SetRowsCount(n int) {
	g.o.rowsCount = max(0, n)
	g.Refresh()
}

// SetRowKey changes row identity and recomputes.
func (g *Grid) SetRowKey(fn axis.KeyFunc) {
	g.o.rowKey = fn
	g.Refresh()
}

// SetColumnsCount changes the number of columns and recomputes.
func (g *Grid) SetColumnsCount(n int) {
	g.o.columnsCount = max(0, n)
	g.Refresh()
}

// SetColumnKey changes column identity and recomputes.
func (g *Grid) SetColumnKey(fn axis.KeyFunc) {
	g.o.columnKey = fn
	g.Refresh()
}

// Refresh re-reads the scroll container and recomputes both axes
// synchronously.
func (g *Grid) Refresh() {
	if g.closed {
		return
	}
	g.attach()
	g.recompute()
}

// Close disconnects every observer and cancels pending work.
func (g *Grid) Close() { g.close() }

func (g *Grid) columnKey(i int) string {
	if g.o.columnKey != nil {
		return g.o.columnKey(i)
	}
	return axis.IndexKey(i)
}

func (g *Grid) recompute() {
	if g.closed {
		return
	}
	g.rows = g.computeRows()
	g.cols = axis.Compute(axis.Input{
		Count:          g.o.columnsCount,
		Size:           g.o.columnWidth,
		Key:            g.columnKey,
		ScrollOffset:   g.colVP.offset,
		ViewportExtent: g.colVP.extent,
		Overscan:       g.o.overscanX,
	})
	g.logger.Debug("window recomputed",
		"rowStart", g.rows.StartIndex,
		"rowEnd", g.rows.EndIndex,
		"colStart", g.cols.StartIndex,
		"colEnd", g.cols.EndIndex,
		"scrollTop", g.rowVP.offset,
		"scrollLeft", g.colVP.offset)
	g.notify()
}
