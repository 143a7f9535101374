package virtual

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/host"
	"github.com/miosa/osa-virtual/ui/measure"
)

// ---------------------------------------------------------------------------
// Fake host
// ---------------------------------------------------------------------------

type fakeItem struct {
	attrs     map[string]string
	connected bool
	size      host.Size
}

func newItem(index int, height float64) *fakeItem {
	return &fakeItem{
		attrs:     map[string]string{host.IndexAttr: host.FormatIndex(index)},
		connected: true,
		size:      host.Size{Width: 300, Height: height},
	}
}

func (e *fakeItem) Attr(name string) (string, bool) { v, ok := e.attrs[name]; return v, ok }
func (e *fakeItem) Connected() bool                 { return e.connected }
func (e *fakeItem) Measure() host.Observation       { return host.Observation{Rect: e.size} }

type fakeContainer struct {
	fakeItem
	top, left float64
	src       *fakeSource
	scrollBys int
}

func newContainer(src *fakeSource, width, height float64) *fakeContainer {
	return &fakeContainer{
		fakeItem: fakeItem{attrs: map[string]string{}, connected: true, size: host.Size{Width: width, Height: height}},
		src:      src,
	}
}

func (c *fakeContainer) ScrollTop() float64  { return c.top }
func (c *fakeContainer) ScrollLeft() float64 { return c.left }

// ScrollBy notifies synchronously, the harshest ordering a host can choose.
func (c *fakeContainer) ScrollBy(dx, dy float64) {
	c.scrollBys++
	c.left += dx
	c.top += dy
	c.src.emit(c)
}

// scrollTo moves the container the way a user would.
func (c *fakeContainer) scrollTo(top, left float64) {
	c.top, c.left = top, left
	c.src.emit(c)
}

type fakeSource struct {
	subs         map[host.ScrollContainer]func(top, left float64)
	unsubscribes int
}

func newSource() *fakeSource {
	return &fakeSource{subs: make(map[host.ScrollContainer]func(top, left float64))}
}

func (s *fakeSource) OnScroll(c host.ScrollContainer, fn func(top, left float64)) func() {
	s.subs[c] = fn
	return func() {
		s.unsubscribes++
		delete(s.subs, c)
	}
}

func (s *fakeSource) emit(c *fakeContainer) {
	if fn, ok := s.subs[c]; ok {
		fn(c.top, c.left)
	}
}

type fakeObserver struct {
	subs        map[host.Element]func(host.Observation)
	disconnects int
}

func newObserver() *fakeObserver {
	return &fakeObserver{subs: make(map[host.Element]func(host.Observation))}
}

func (o *fakeObserver) Observe(el host.Element, fn func(host.Observation)) func() {
	o.subs[el] = fn
	return func() {
		o.disconnects++
		delete(o.subs, el)
	}
}

func (o *fakeObserver) resize(el host.Element, size host.Size) {
	if fn, ok := o.subs[el]; ok {
		fn(host.Observation{Box: size, HasBox: true, Rect: size})
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// harness wires one virtualizer to a fake host on a shared loop.
type harness struct {
	clock     *fakeClock
	loop      *frame.Loop
	src       *fakeSource
	obs       *fakeObserver
	container *fakeContainer
	changes   int
}

func newHarness(width, height float64) *harness {
	h := &harness{clock: &fakeClock{t: time.Unix(0, 0)}, src: newSource(), obs: newObserver()}
	h.loop = frame.NewLoop(frame.WithClock(h.clock.now))
	h.container = newContainer(h.src, width, height)
	return h
}

func (h *harness) opts(extra ...Option) []Option {
	return append([]Option{
		WithScrollContainer(func() host.ScrollContainer { return h.container }),
		WithScrollSource(h.src),
		WithSizeObserver(h.obs),
		WithLoop(h.loop),
		WithOnChange(func() { h.changes++ }),
	}, extra...)
}

func (h *harness) flush() int { return h.loop.Flush(h.clock.now()) }

// ---------------------------------------------------------------------------
// Setup
// ---------------------------------------------------------------------------

func TestNewList_SetupErrors(t *testing.T) {
	calls := 0
	get := WithScrollContainer(func() host.ScrollContainer { calls++; return nil })
	src := WithScrollSource(newSource())

	_, err := NewList(WithRowsCount(10), get, src)
	require.ErrorIs(t, err, measure.ErrNoSizeFunc)

	_, err = NewList(WithRowsCount(10), WithRowHeight(axis.Fixed(1)), WithEstimateRowHeight(axis.Fixed(1)), get, src)
	require.ErrorIs(t, err, measure.ErrAmbiguousSize)

	_, err = NewList(WithRowHeight(axis.Fixed(1)), get)
	require.ErrorIs(t, err, ErrNoScrollSource)

	_, err = NewGrid(WithRowHeight(axis.Fixed(1)), get, src)
	require.ErrorIs(t, err, ErrNoColumnWidth)

	require.Zero(t, calls, "the container must not be touched before validation passes")
}

func TestNewList_InitialWindow(t *testing.T) {
	h := newHarness(300, 600)
	l, err := NewList(h.opts(WithRowsCount(100), WithRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()

	w := l.Window()
	require.Equal(t, 0, w.StartIndex)
	require.Equal(t, 14, w.EndIndex)
	require.Len(t, w.Rows, 15)
	require.Equal(t, 5000.0, w.TotalHeight)
	require.False(t, w.IsScrolling)
	require.Equal(t, 1, h.changes)
	require.Contains(t, h.src.subs, host.ScrollContainer(h.container))
	require.Contains(t, h.obs.subs, host.Element(h.container))
}

func TestList_NilContainerUntilRefresh(t *testing.T) {
	h := newHarness(300, 200)
	var c host.ScrollContainer
	l, err := NewList(
		WithRowsCount(10),
		WithRowHeight(axis.Fixed(50)),
		WithScrollContainer(func() host.ScrollContainer { return c }),
		WithScrollSource(h.src),
		WithSizeObserver(h.obs),
		WithLoop(h.loop),
	)
	require.NoError(t, err)
	defer l.Close()
	require.Equal(t, 500.0, l.Window().TotalHeight)
	require.Empty(t, h.src.subs)

	h.container.top = 100
	c = h.container
	l.Refresh()
	require.Len(t, h.src.subs, 1)
	require.Equal(t, 100.0, l.ScrollOffset())
	require.Equal(t, 0, l.Window().StartIndex, "row 2 minus overscan")
	require.Equal(t, 8, l.Window().EndIndex)

	// Refreshing against the same container keeps the subscription.
	l.Refresh()
	require.Zero(t, h.src.unsubscribes)

	c = nil
	l.Refresh()
	require.Empty(t, h.src.subs)
	require.Equal(t, 1, h.src.unsubscribes)
}

// ---------------------------------------------------------------------------
// Scrolling
// ---------------------------------------------------------------------------

func TestList_ScrollEventsCoalescePerFrame(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(100), WithRowHeight(axis.Fixed(50)), WithOverscanY(0))...)
	require.NoError(t, err)
	defer l.Close()
	h.changes = 0

	for _, top := range []float64{10, 60, 120, 400, 1000} {
		h.container.scrollTo(top, 0)
	}
	require.True(t, l.IsScrolling())
	require.Equal(t, 1, h.changes, "only the idle to scrolling transition before the frame")
	require.Equal(t, 0, l.Window().StartIndex, "window is published at the frame boundary")

	require.Equal(t, 1, h.flush())
	require.Equal(t, 2, h.changes)
	w := l.Window()
	require.Equal(t, 20, w.StartIndex)
	require.Equal(t, 23, w.EndIndex)
	require.True(t, w.IsScrolling)
}

func TestList_ScrollingSettlesAfterDelay(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(100), WithRowHeight(axis.Fixed(50)), WithScrollingDelay(150*time.Millisecond))...)
	require.NoError(t, err)
	defer l.Close()

	h.container.scrollTo(50, 0)
	h.clock.advance(100 * time.Millisecond)
	h.container.scrollTo(100, 0)
	h.flush()
	require.True(t, l.IsScrolling())

	h.clock.advance(100 * time.Millisecond)
	h.flush()
	require.True(t, l.IsScrolling(), "the second event restarted the delay")

	h.clock.advance(50 * time.Millisecond)
	before := h.changes
	h.flush()
	require.False(t, l.IsScrolling())
	require.Equal(t, before+1, h.changes)
	require.False(t, h.loop.Pending())
}

func TestList_ContainerResizeRecomputesImmediately(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(100), WithRowHeight(axis.Fixed(50)), WithOverscanY(0))...)
	require.NoError(t, err)
	defer l.Close()
	require.Equal(t, 3, l.Window().EndIndex)

	h.obs.resize(h.container, host.Size{Width: 300, Height: 500})
	require.Equal(t, 9, l.Window().EndIndex)
	require.False(t, h.loop.Pending())
}

// ---------------------------------------------------------------------------
// Measurement
// ---------------------------------------------------------------------------

func TestList_CompensatesGrowthAboveViewport(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()

	h.container.scrollTo(100, 0)
	h.flush()
	h.flush()
	anchor, _ := l.Layout().Slot(2)
	require.Equal(t, 0.0, anchor.Offset-l.ScrollOffset(), "row 2 sits on the top edge")

	require.NoError(t, l.MeasureRow(newItem(0, 80)))
	require.Equal(t, 130.0, l.ScrollOffset(), "offset is corrected before the container write")
	require.Zero(t, h.container.scrollBys)

	h.flush()
	require.Equal(t, 1, h.container.scrollBys)
	require.Equal(t, 130.0, h.container.top)
	require.Equal(t, 130.0, l.ScrollOffset(), "the echoed scroll event must not double the delta")

	anchor, _ = l.Layout().Slot(2)
	require.Equal(t, 130.0, anchor.Offset)
	require.Equal(t, 0.0, anchor.Offset-l.ScrollOffset())
	require.Equal(t, 530.0, l.Window().TotalHeight)
}

func TestList_UserScrollDuringPendingAdjust(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()
	h.container.scrollTo(100, 0)
	h.flush()

	require.NoError(t, l.MeasureRow(newItem(0, 80)))
	h.container.scrollTo(110, 0)
	require.Equal(t, 140.0, l.ScrollOffset())

	h.flush()
	require.Equal(t, 140.0, h.container.top)
	require.Equal(t, 140.0, l.ScrollOffset())
}

func TestList_MeasurementIsIdempotent(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()
	h.container.scrollTo(100, 0)
	h.flush()

	el := newItem(0, 80)
	require.NoError(t, l.MeasureRow(el))
	h.flush()
	h.clock.advance(time.Second)
	h.flush()
	require.False(t, h.loop.Pending())

	require.NoError(t, l.MeasureRow(el))
	h.obs.resize(el, el.size)
	require.False(t, h.loop.Pending())
	require.Equal(t, 1, h.container.scrollBys)
	require.Equal(t, 130.0, h.container.top)
}

func TestList_BelowViewportDoesNotScroll(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.MeasureRow(newItem(1, 120)))
	h.flush()
	require.Zero(t, h.container.scrollBys)
	require.Equal(t, 570.0, l.Window().TotalHeight)
	v, ok := l.Measured("1")
	require.True(t, ok)
	require.Equal(t, 120.0, v)
}

func TestList_UnresolvableRowIsDropped(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(3), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()

	require.ErrorIs(t, l.MeasureRow(newItem(9, 10)), measure.ErrUnresolvableIndex)
	require.False(t, h.loop.Pending())
}

func TestList_ReorderKeepsMeasuredSizes(t *testing.T) {
	h := newHarness(300, 1000)
	keys := []string{"a", "b", "c", "d"}
	l, err := NewList(h.opts(
		WithRowsCount(len(keys)),
		WithEstimateRowHeight(axis.Fixed(50)),
		WithRowKey(func(i int) string { return keys[i] }),
	)...)
	require.NoError(t, err)
	defer l.Close()

	for i, hgt := range []float64{10, 20, 30, 40} {
		require.NoError(t, l.MeasureRow(newItem(i, hgt)))
	}
	h.flush()

	reversed := []string{"d", "c", "b", "a"}
	l.SetRowKey(func(i int) string { return reversed[i] })
	for i, want := range []float64{40, 30, 20, 10} {
		s, _ := l.Layout().Slot(i)
		require.Equal(t, want, s.Size)
		require.Equal(t, reversed[i], s.Key)
	}
	require.False(t, h.loop.Pending(), "nothing is re-measured")
}

func TestList_SetRowsCount(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(3), WithRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)
	defer l.Close()

	l.SetRowsCount(0)
	require.Empty(t, l.Window().Rows)
	require.Equal(t, axis.NoIndex, l.Window().StartIndex)

	l.SetRowsCount(20)
	require.Equal(t, 1000.0, l.Window().TotalHeight)
}

// ---------------------------------------------------------------------------
// Teardown
// ---------------------------------------------------------------------------

func TestList_CloseStopsEverything(t *testing.T) {
	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)))...)
	require.NoError(t, err)

	el := newItem(0, 80)
	require.NoError(t, l.MeasureRow(el))
	scrollFn := h.src.subs[h.container]
	resizeFn := h.obs.subs[host.Element(el)]
	h.container.scrollTo(100, 0)

	l.Close()
	l.Close()
	require.Empty(t, h.src.subs)
	require.Empty(t, h.obs.subs)
	require.False(t, h.loop.Pending())

	before := h.changes
	scrollFn(300, 0)
	resizeFn(host.Observation{Rect: host.Size{Height: 10}})
	h.clock.advance(time.Second)
	h.flush()
	l.Refresh()
	require.Equal(t, before, h.changes)
	require.NoError(t, l.MeasureRow(newItem(1, 10)))
}

func TestList_OwnLoopWhenNoneShared(t *testing.T) {
	l, err := NewList(WithRowsCount(5), WithRowHeight(axis.Fixed(1)))
	require.NoError(t, err)
	loop := l.Loop()
	require.NotNil(t, loop)
	l.Close()
	require.True(t, loop.Closed())
}

// ---------------------------------------------------------------------------
// Grid
// ---------------------------------------------------------------------------

func TestGrid_IndependentAxes(t *testing.T) {
	h := newHarness(300, 200)
	g, err := NewGrid(h.opts(
		WithRowsCount(10),
		WithRowHeight(axis.Fixed(50)),
		WithColumnsCount(20),
		WithColumnWidth(axis.Fixed(100)),
		WithOverscanX(1),
		WithOverscanY(0),
	)...)
	require.NoError(t, err)
	defer g.Close()

	h.container.scrollTo(0, 250)
	h.flush()
	w := g.Window()
	require.Equal(t, 0, w.RowStart)
	require.Equal(t, 3, w.RowEnd)
	require.Equal(t, 1, w.ColumnStart)
	require.Equal(t, 6, w.ColumnEnd)
	require.Equal(t, 2000.0, w.TotalWidth)
	require.Equal(t, 500.0, w.TotalHeight)
	require.Equal(t, 4*6, w.Cells())

	top, left := g.ScrollOffset()
	require.Equal(t, 0.0, top)
	require.Equal(t, 250.0, left)
}

func TestGrid_RowCompensationLeavesColumnsAlone(t *testing.T) {
	h := newHarness(300, 200)
	g, err := NewGrid(h.opts(
		WithRowsCount(10),
		WithEstimateRowHeight(axis.Fixed(50)),
		WithColumnsCount(5),
		WithColumnWidth(axis.Fixed(100)),
	)...)
	require.NoError(t, err)
	defer g.Close()

	h.container.scrollTo(100, 150)
	h.flush()
	require.NoError(t, g.MeasureRow(newItem(0, 70)))
	h.flush()

	top, left := g.ScrollOffset()
	require.Equal(t, 120.0, top)
	require.Equal(t, 150.0, left)
	require.Equal(t, 150.0, h.container.left)
}

func TestGrid_SetColumns(t *testing.T) {
	h := newHarness(300, 200)
	g, err := NewGrid(h.opts(
		WithRowsCount(2),
		WithRowHeight(axis.Fixed(50)),
		WithColumnWidth(axis.Fixed(100)),
	)...)
	require.NoError(t, err)
	defer g.Close()
	require.Empty(t, g.Window().Columns)

	g.SetColumnsCount(4)
	g.SetColumnKey(func(i int) string { return string(rune('A' + i)) })
	cols := g.Window().Columns
	require.Len(t, cols, 4)
	require.Equal(t, "A", cols[0].Key)
	require.Equal(t, 400.0, g.Window().TotalWidth)
}

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

func TestList_LogsDroppedReports(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := newHarness(300, 200)
	l, err := NewList(h.opts(WithRowsCount(10), WithEstimateRowHeight(axis.Fixed(50)), WithLogger(logger))...)
	require.NoError(t, err)
	defer l.Close()

	require.Error(t, l.MeasureRow(newItem(500, 80)))
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "component=list")
	require.Contains(t, buf.String(), "window recomputed")
}

func TestSetLogger_NilRestoresSilentDefault(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	require.True(t, Logger().Enabled(context.Background(), slog.LevelWarn))

	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelWarn))
}
