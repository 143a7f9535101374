package virtual

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/host"
	"github.com/miosa/osa-virtual/ui/measure"
	"github.com/miosa/osa-virtual/ui/scroll"
	"github.com/miosa/osa-virtual/ui/snapshot"
)

var (
	// ErrNoColumnWidth is returned by NewGrid without WithColumnWidth.
	ErrNoColumnWidth = errors.New("virtual: grid needs a fixed column width function")

	// ErrNoScrollSource is returned when a scroll container is configured
	// without a scroll source to follow it.
	ErrNoScrollSource = errors.New("virtual: scroll container configured without a scroll source")
)

var instanceCounter atomic.Int64

// maxAdjustTries bounds how many windows a refused scroll correction is
// retried for before the offset is resynced to the container.
const maxAdjustTries = 3

// viewport is the scroll state of one axis.
type viewport struct {
	offset float64
	extent float64
}

// core is the row-axis machinery shared by List and Grid: container
// attachment, scroll and resize handling, the activity tracker and row
// measurement with scroll compensation.
type core struct {
	o      options
	logger *slog.Logger

	loop    *frame.Loop
	ownLoop bool
	tracker *scroll.Tracker

	cache    *measure.Cache
	state    *snapshot.Cell[measure.State]
	measurer *measure.Measurer
	registry *measure.Registry
	rowSize  axis.SizeFunc

	rowVP viewport
	colVP viewport

	container   host.ScrollContainer
	unsubscribe func()
	unobserve   func()

	// Compensation already applied to rowVP but not yet written to the
	// container. Added to any scroll reading that arrives meanwhile.
	pendingDX, pendingDY float64
	// Set when the container refused part of a write; the write is retried
	// after the next published window so the host has applied its extent.
	retryAdjust bool
	adjustTries int

	taskRecompute string
	taskAdjust    string

	recompute func()
	closed    bool
}

func newCore(kind string, o options) (*core, error) {
	if o.getContainer != nil && o.source == nil {
		return nil, ErrNoScrollSource
	}

	id := instanceCounter.Add(1)
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}
	logger = logger.With("component", kind, "instance", id)

	c := &core{
		o:             o,
		logger:        logger,
		cache:         measure.NewCache(),
		state:         snapshot.New(measure.State{}),
		taskRecompute: fmt.Sprintf("virtual/%d/recompute", id),
		taskAdjust:    fmt.Sprintf("virtual/%d/scroll-adjust", id),
	}

	size, err := measure.Resolver(o.rowHeight, o.estimateRowHeight, c.rowKey, c.cache)
	if err != nil {
		return nil, fmt.Errorf("virtual: rows: %w", err)
	}
	c.rowSize = size

	c.loop = o.loop
	if c.loop == nil {
		c.loop = frame.NewLoop()
		c.ownLoop = true
	}
	c.tracker = scroll.NewTracker(c.loop, o.scrollingDelay, func(bool) { c.notify() })
	c.measurer = measure.NewMeasurer(measure.Opts{
		Cache:    c.cache,
		State:    c.state,
		Scroller: measure.ScrollerFunc(c.compensateY),
		Logger:   logger,
		OnCommit: func(int, measure.Outcome) { c.requestRecompute() },
	})
	c.registry = measure.NewRegistry(c.measurer, o.observer, measure.AxisY)
	return c, nil
}

func (c *core) rowKey(i int) string {
	if c.o.rowKey != nil {
		return c.o.rowKey(i)
	}
	return axis.IndexKey(i)
}

// attach follows the container returned by the accessor, swapping
// subscriptions when it changed and doing nothing while it is nil.
func (c *core) attach() {
	if c.closed || c.o.getContainer == nil {
		return
	}
	el := c.o.getContainer()
	if el == nil {
		if c.container != nil {
			c.detach()
		}
		return
	}
	if el == c.container {
		return
	}
	c.detach()

	c.container = el
	c.unsubscribe = c.o.source.OnScroll(el, c.onScroll)
	if c.o.observer != nil {
		c.unobserve = c.o.observer.Observe(el, c.onContainerResize)
	}
	size := el.Measure().Size()
	c.rowVP = viewport{offset: el.ScrollTop(), extent: size.Height}
	c.colVP = viewport{offset: el.ScrollLeft(), extent: size.Width}
	c.logger.Debug("attached to scroll container",
		"width", size.Width,
		"height", size.Height,
		"scrollTop", c.rowVP.offset,
		"scrollLeft", c.colVP.offset)
}

func (c *core) detach() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.unobserve != nil {
		c.unobserve()
		c.unobserve = nil
	}
	if c.container != nil {
		c.logger.Debug("detached from scroll container")
	}
	c.container = nil
	c.pendingDX, c.pendingDY = 0, 0
	c.retryAdjust, c.adjustTries = false, 0
}

func (c *core) onScroll(top, left float64) {
	if c.closed {
		return
	}
	c.rowVP.offset = top + c.pendingDY
	c.colVP.offset = left + c.pendingDX
	c.tracker.Scroll()
	c.requestRecompute()
}

func (c *core) onContainerResize(o host.Observation) {
	if c.closed {
		return
	}
	size := o.Size()
	c.rowVP.extent = size.Height
	c.colVP.extent = size.Width
	c.recompute()
}

// compensateY corrects the row offset at once and queues the container
// write for the next frame boundary.
func (c *core) compensateY(delta float64) {
	c.rowVP.offset += delta
	c.pendingDY += delta
	c.loop.Request(c.taskAdjust, c.flushAdjust)
}

func (c *core) flushAdjust() {
	if c.closed {
		return
	}
	dx, dy := c.pendingDX, c.pendingDY
	c.pendingDX, c.pendingDY = 0, 0
	if c.container == nil || (dx == 0 && dy == 0) {
		return
	}
	top, left := c.container.ScrollTop(), c.container.ScrollLeft()
	c.container.ScrollBy(dx, dy)

	// A container clamps writes past its current content extent. Keep what
	// did not land and try again once the host has seen the next window.
	restX := dx - (c.container.ScrollLeft() - left)
	restY := dy - (c.container.ScrollTop() - top)
	if restX == 0 && restY == 0 {
		c.adjustTries = 0
		return
	}
	c.adjustTries++
	if c.adjustTries > maxAdjustTries {
		c.logger.Debug("scroll correction refused by container",
			"dx", restX,
			"dy", restY,
			"tries", c.adjustTries)
		c.adjustTries = 0
		c.rowVP.offset = c.container.ScrollTop()
		c.colVP.offset = c.container.ScrollLeft()
		c.requestRecompute()
		return
	}
	c.pendingDX, c.pendingDY = restX, restY
	c.rowVP.offset = c.container.ScrollTop() + restY
	c.colVP.offset = c.container.ScrollLeft() + restX
	c.retryAdjust = true
	c.requestRecompute()
}

func (c *core) requestRecompute() {
	if c.closed {
		return
	}
	c.loop.Request(c.taskRecompute, c.recompute)
}

// computeRows lays out the row axis and publishes the snapshot the measurer
// reads. Called right before a window becomes visible to the host.
func (c *core) computeRows() axis.Window {
	w := axis.Compute(axis.Input{
		Count:          c.o.rowsCount,
		Size:           c.rowSize,
		Key:            c.rowKey,
		ScrollOffset:   c.rowVP.offset,
		ViewportExtent: c.rowVP.extent,
		Overscan:       c.o.overscanY,
	})
	c.state.Set(measure.State{Slots: w.Slots, ScrollOffset: c.rowVP.offset})
	if n := c.registry.Prune(); n > 0 {
		c.logger.Debug("pruned detached rows", "count", n)
	}
	return w
}

func (c *core) notify() {
	if c.closed {
		return
	}
	if c.o.onChange != nil {
		c.o.onChange()
	}
	if c.retryAdjust {
		c.retryAdjust = false
		c.loop.Request(c.taskAdjust, c.flushAdjust)
	}
}

func (c *core) measureRow(el host.Element) error {
	if c.closed {
		return nil
	}
	return c.registry.Measure(el)
}

func (c *core) close() {
	if c.closed {
		return
	}
	c.detach()
	c.closed = true
	c.registry.Close()
	c.tracker.Close()
	if c.ownLoop {
		c.loop.Close()
	} else {
		c.loop.Cancel(c.taskRecompute)
		c.loop.Cancel(c.taskAdjust)
	}
	c.logger.Debug("closed", "measured", c.cache.Len())
}
