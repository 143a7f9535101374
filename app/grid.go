package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/style"
	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/common"
	"github.com/miosa/osa-virtual/ui/header"
	"github.com/miosa/osa-virtual/ui/host"
	"github.com/miosa/osa-virtual/ui/status"
	"github.com/miosa/osa-virtual/ui/term"
	"github.com/miosa/osa-virtual/ui/virtual"
)

// gridRowEstimate is the estimated height of a grid row before it is painted.
const gridRowEstimate = 2

// gridDemo shows a table of fixed-width columns whose rows span one to three
// lines. Each row is one node spanning the visible columns.
type gridDemo struct {
	env
	pane  *term.Pane
	pool  *term.Pool
	grid  *virtual.Grid
	nodes []*term.Node
	cols  []axis.Slot // columns the mounted nodes were rendered with

	order   []int
	nextID  int
	windows int
}

func newGridDemo(e env) (*gridDemo, error) {
	d := &gridDemo{
		env:    e,
		pane:   term.NewPane(e.doc, e.width, e.height),
		pool:   term.NewPool(e.doc),
		order:  identity(e.cfg.Rows),
		nextID: e.cfg.Rows,
	}
	g, err := virtual.NewGrid(
		virtual.WithRowsCount(len(d.order)),
		virtual.WithEstimateRowHeight(axis.Fixed(gridRowEstimate)),
		virtual.WithRowKey(d.rowKey),
		virtual.WithColumnsCount(e.cfg.Columns),
		virtual.WithColumnWidth(axis.Fixed(float64(e.cfg.ColumnWidth))),
		virtual.WithOverscanX(e.cfg.OverscanX),
		virtual.WithOverscanY(e.cfg.OverscanY),
		virtual.WithScrollingDelay(e.cfg.ScrollingDelay()),
		virtual.WithScrollContainer(func() host.ScrollContainer { return d.pane }),
		virtual.WithScrollSource(e.doc),
		virtual.WithSizeObserver(e.doc),
		virtual.WithLoop(e.loop),
		virtual.WithOnChange(d.published),
	)
	if err != nil {
		d.pane.Detach()
		return nil, fmt.Errorf("app: grid demo: %w", err)
	}
	d.grid = g
	d.applyExtent()
	return d, nil
}

// published applies the new content extent to the pane; see listDemo.published.
func (d *gridDemo) published() {
	d.windows++
	d.applyExtent()
}

func (d *gridDemo) applyExtent() {
	if d.grid != nil {
		w := d.grid.Window()
		d.pane.SetContentSize(w.TotalWidth, w.TotalHeight)
	}
}

func (d *gridDemo) rowKey(i int) string {
	if i < 0 || i >= len(d.order) {
		return axis.IndexKey(i)
	}
	return strconv.Itoa(d.order[i])
}

// rowLines is the line count of every cell in row id. It never depends on
// the column so a row's height is the same whichever columns are mounted.
func rowLines(id int) int { return 1 + (id*5)%3 }

func (d *gridDemo) renderRow(s axis.Slot) string {
	id := d.order[s.Index]
	cells := make([][]string, len(d.cols))
	widths := make([]int, len(d.cols))
	for j, c := range d.cols {
		widths[j] = int(c.Size)
		cells[j] = cell(id, c.Index, widths[j])
	}
	return strings.Join(term.JoinCells(cells, widths), "\n")
}

func cell(row, col, width int) []string {
	n := rowLines(row)
	heat := (row*31 + col*17) % 100
	lines := make([]string, n)
	lines[0] = fmt.Sprintf(" r%d·c%d", row, col)
	for k := 1; k < n; k++ {
		lines[k] = fmt.Sprintf(" %3d%%", (heat+k*13)%100)
	}
	st := cellStyle(row, col, float64(heat)/100)
	fit := term.FitCell(strings.Join(lines, "\n"), width)
	for i := range fit {
		fit[i] = st.Render(fit[i])
	}
	return fit
}

func cellStyle(row, col int, heat float64) lipgloss.Style {
	switch {
	case col == 0:
		return style.CellHeader
	case style.IsPlain() && row%2 == 1:
		return style.CellZebra
	case style.IsPlain():
		return style.CellPlain
	default:
		return style.Heat(heat * 0.6)
	}
}

func (d *gridDemo) Kind() Demo       { return DemoGrid }
func (d *gridDemo) Pane() *term.Pane { return d.pane }
func (d *gridDemo) HScroll() bool    { return true }

func (d *gridDemo) Sync() {
	w := d.grid.Window()
	d.pane.SetContentSize(w.TotalWidth, w.TotalHeight)
	d.cols = w.Columns
	d.nodes = d.pool.Sync(w.Rows, d.renderRow)
	for _, n := range d.nodes {
		if err := d.grid.MeasureRow(n); err != nil {
			slog.Debug("grid row not measured", "err", err)
		}
	}
}

func (d *gridDemo) View() string {
	w := d.grid.Window()
	top, left := d.grid.ScrollOffset()
	x := 0.0
	if len(d.cols) > 0 {
		x = d.cols[0].Offset
	}
	pane := term.Compose(d.width, d.height, top, left, flow(w.Rows, d.nodes, x))
	out := withScrollbar(pane, d.height, w.TotalHeight, top)

	bar := common.HScrollbar(d.width, int(w.TotalWidth), int(left))
	if bar == "" {
		bar = strings.Repeat(" ", d.width)
	}
	return out + "\n" + bar
}

func (d *gridDemo) Stats() status.Stats {
	w := d.grid.Window()
	top, _ := d.grid.ScrollOffset()
	return status.Stats{
		Start:     w.RowStart,
		End:       w.RowEnd,
		Count:     len(d.order),
		ColStart:  w.ColumnStart,
		ColEnd:    w.ColumnEnd,
		Columns:   d.cfg.Columns,
		Offset:    top,
		Total:     w.TotalHeight,
		Measured:  d.grid.MeasuredCount(),
		Windows:   d.windows,
		Scrolling: w.IsScrolling,
	}
}

func (d *gridDemo) Items() string {
	return fmt.Sprintf("%s × %s", header.Items(len(d.order), "rows"), header.Items(d.cfg.Columns, "cols"))
}

func (d *gridDemo) Resize(width, height int) {
	d.width, d.height = width, height
	d.pane.SetSize(width, height)
}

// Retheme is a no-op: cells are restyled on every Sync.
func (d *gridDemo) Retheme() {}

func (d *gridDemo) Reverse() {
	d.order = reversed(d.order)
	d.grid.SetRowKey(d.rowKey)
}

func (d *gridDemo) AddRow() {
	d.order = append(d.order, d.nextID)
	d.nextID++
	d.grid.SetRowsCount(len(d.order))
}

func (d *gridDemo) DropRow() {
	if len(d.order) == 0 {
		return
	}
	d.order = d.order[:len(d.order)-1]
	d.grid.SetRowsCount(len(d.order))
}

func (d *gridDemo) Close() {
	d.grid.Close()
	d.pool.Clear()
	d.pane.Detach()
}
