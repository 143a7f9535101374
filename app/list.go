package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/miosa/osa-virtual/style"
	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/header"
	"github.com/miosa/osa-virtual/ui/host"
	"github.com/miosa/osa-virtual/ui/markdown"
	"github.com/miosa/osa-virtual/ui/status"
	"github.com/miosa/osa-virtual/ui/term"
	"github.com/miosa/osa-virtual/ui/virtual"
)

// listDemo shows markdown rows of varying height. Heights start at the
// configured estimate and are corrected as rows are first painted.
type listDemo struct {
	env
	pane  *term.Pane
	pool  *term.Pool
	list  *virtual.List
	md    *markdown.Renderer
	nodes []*term.Node

	order    []int // row index → row id
	nextID   int
	rendered map[int]string // row id → bordered markdown
	windows  int
}

func newListDemo(e env) (*listDemo, error) {
	d := &listDemo{
		env:      e,
		pane:     term.NewPane(e.doc, e.width, e.height),
		pool:     term.NewPool(e.doc),
		md:       markdown.New(e.glamour),
		order:    identity(e.cfg.Rows),
		nextID:   e.cfg.Rows,
		rendered: make(map[int]string),
	}
	if err := d.build(); err != nil {
		d.pane.Detach()
		return nil, err
	}
	return d, nil
}

func (d *listDemo) build() error {
	l, err := virtual.NewList(
		virtual.WithRowsCount(len(d.order)),
		virtual.WithEstimateRowHeight(axis.Fixed(d.cfg.EstimateRowHeight)),
		virtual.WithRowKey(d.rowKey),
		virtual.WithOverscanY(d.cfg.OverscanY),
		virtual.WithScrollingDelay(d.cfg.ScrollingDelay()),
		virtual.WithScrollContainer(func() host.ScrollContainer { return d.pane }),
		virtual.WithScrollSource(d.doc),
		virtual.WithSizeObserver(d.doc),
		virtual.WithLoop(d.loop),
		virtual.WithOnChange(d.published),
	)
	if err != nil {
		return fmt.Errorf("app: list demo: %w", err)
	}
	d.list = l
	d.applyExtent()
	return nil
}

// published applies the new total height to the pane as soon as a window is
// published, so scroll corrections queued with it are not clamped.
func (d *listDemo) published() {
	d.windows++
	d.applyExtent()
}

func (d *listDemo) applyExtent() {
	if d.list != nil {
		d.pane.SetContentSize(float64(d.width), d.list.Window().TotalHeight)
	}
}

// rebuild drops every measurement. Used when the wrap width or the markdown
// style changes, since every cached height is stale at that point.
func (d *listDemo) rebuild() {
	d.list.Close()
	d.pool.Clear()
	d.nodes = nil
	d.rendered = make(map[int]string)
	if err := d.build(); err != nil {
		slog.Error("list demo rebuild failed", "err", err)
	}
}

func (d *listDemo) rowKey(i int) string {
	if i < 0 || i >= len(d.order) {
		return axis.IndexKey(i)
	}
	return strconv.Itoa(d.order[i])
}

func (d *listDemo) render(s axis.Slot) string {
	id := d.order[s.Index]
	if out, ok := d.rendered[id]; ok {
		return out
	}
	body := d.md.Render(rowMarkdown(id), max(d.width-2, 1))
	out := style.RowBorder.Render(body)
	d.rendered[id] = out
	return out
}

func (d *listDemo) Kind() Demo       { return DemoList }
func (d *listDemo) Pane() *term.Pane { return d.pane }
func (d *listDemo) HScroll() bool    { return false }

func (d *listDemo) Sync() {
	w := d.list.Window()
	d.pane.SetContentSize(float64(d.width), w.TotalHeight)
	d.nodes = d.pool.Sync(w.Rows, d.render)
	for _, n := range d.nodes {
		if err := d.list.MeasureRow(n); err != nil {
			slog.Debug("row not measured", "err", err)
		}
	}
}

func (d *listDemo) View() string {
	w := d.list.Window()
	top := d.list.ScrollOffset()
	pane := term.Compose(d.width, d.height, top, 0, flow(w.Rows, d.nodes, 0))
	return withScrollbar(pane, d.height, w.TotalHeight, top)
}

func (d *listDemo) Stats() status.Stats {
	w := d.list.Window()
	return status.Stats{
		Start:     w.StartIndex,
		End:       w.EndIndex,
		Count:     len(d.order),
		Offset:    d.list.ScrollOffset(),
		Total:     w.TotalHeight,
		Measured:  d.list.MeasuredCount(),
		Windows:   d.windows,
		Scrolling: w.IsScrolling,
	}
}

func (d *listDemo) Items() string { return header.Items(len(d.order), "rows") }

func (d *listDemo) Resize(width, height int) {
	widthChanged := width != d.width
	d.width, d.height = width, height
	d.pane.SetSize(width, height)
	if widthChanged {
		d.rebuild()
	}
}

func (d *listDemo) Retheme() {
	d.md.SetStyle(glamourStyle())
	d.rebuild()
}

func (d *listDemo) Reverse() {
	d.order = reversed(d.order)
	d.list.SetRowKey(d.rowKey)
}

func (d *listDemo) AddRow() {
	d.order = append(d.order, d.nextID)
	d.nextID++
	d.list.SetRowsCount(len(d.order))
}

func (d *listDemo) DropRow() {
	if len(d.order) == 0 {
		return
	}
	delete(d.rendered, d.order[len(d.order)-1])
	d.order = d.order[:len(d.order)-1]
	d.list.SetRowsCount(len(d.order))
}

func (d *listDemo) Close() {
	d.list.Close()
	d.pool.Clear()
	d.pane.Detach()
}

var loremWords = strings.Fields(
	"lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod " +
		"tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam " +
		"quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo")

// rowMarkdown returns the deterministic markdown body of row id. Lengths vary
// enough that estimates are usually wrong.
func rowMarkdown(id int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Row %d\n\n", id)
	n := 6 + (id*7)%40
	for i := range n {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(loremWords[(id+i*3)%len(loremWords)])
	}
	sb.WriteString(".\n")
	if id%4 == 0 {
		sb.WriteString("\n- measured on first paint\n- cached by row id\n")
	}
	if id%9 == 0 {
		sb.WriteString("\n```go\nw := list.Window()\n```\n")
	}
	return sb.String()
}
