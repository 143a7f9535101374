package virtual

import (
	"log/slog"
	"time"

	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/host"
	"github.com/miosa/osa-virtual/ui/scroll"
)

// DefaultOverscan is the number of extra items rendered on each side of the
// visible range, per axis.
const DefaultOverscan = 3

// Option is a functional option for NewList and NewGrid.
type Option func(*options)

type options struct {
	rowsCount         int
	rowHeight         axis.SizeFunc
	estimateRowHeight axis.SizeFunc
	rowKey            axis.KeyFunc

	columnsCount int
	columnWidth  axis.SizeFunc
	columnKey    axis.KeyFunc

	overscanX      int
	overscanY      int
	scrollingDelay time.Duration

	getContainer func() host.ScrollContainer
	observer     host.SizeObserver
	source       host.ScrollSource
	loop         *frame.Loop
	onChange     func()
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		overscanX:      DefaultOverscan,
		overscanY:      DefaultOverscan,
		scrollingDelay: scroll.DefaultDelay,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRowsCount sets the number of rows. Negative counts are treated as 0.
func WithRowsCount(n int) Option {
	return func(o *options) { o.rowsCount = max(0, n) }
}

// WithRowHeight gives every row a known height. Mutually exclusive with
// WithEstimateRowHeight.
func WithRowHeight(fn axis.SizeFunc) Option {
	return func(o *options) { o.rowHeight = fn }
}

// WithEstimateRowHeight guesses row heights until rows are measured.
// Mutually exclusive with WithRowHeight.
func WithEstimateRowHeight(fn axis.SizeFunc) Option {
	return func(o *options) { o.estimateRowHeight = fn }
}

// WithRowKey sets the stable identity of rows. Defaults to the row index.
func WithRowKey(fn axis.KeyFunc) Option {
	return func(o *options) { o.rowKey = fn }
}

// WithColumnsCount sets the number of grid columns.
func WithColumnsCount(n int) Option {
	return func(o *options) { o.columnsCount = max(0, n) }
}

// WithColumnWidth gives every grid column a known width. Required by NewGrid.
func WithColumnWidth(fn axis.SizeFunc) Option {
	return func(o *options) { o.columnWidth = fn }
}

// WithColumnKey sets the stable identity of grid columns.
func WithColumnKey(fn axis.KeyFunc) Option {
	return func(o *options) { o.columnKey = fn }
}

// WithOverscanX sets the horizontal overscan margin.
func WithOverscanX(n int) Option {
	return func(o *options) { o.overscanX = max(0, n) }
}

// WithOverscanY sets the vertical overscan margin.
func WithOverscanY(n int) Option {
	return func(o *options) { o.overscanY = max(0, n) }
}

// WithScrollingDelay sets how long after the last scroll event IsScrolling
// stays true. Non-positive values keep the default.
func WithScrollingDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.scrollingDelay = d
		}
	}
}

// WithScrollContainer sets the accessor for the scroll container. It is
// re-invoked on every Refresh and may return nil before the host mounted.
func WithScrollContainer(get func() host.ScrollContainer) Option {
	return func(o *options) { o.getContainer = get }
}

// WithSizeObserver sets the collaborator reporting container and item sizes.
func WithSizeObserver(obs host.SizeObserver) Option {
	return func(o *options) { o.observer = obs }
}

// WithScrollSource sets the collaborator reporting scroll positions.
func WithScrollSource(src host.ScrollSource) Option {
	return func(o *options) { o.source = src }
}

// WithLoop shares a frame loop with the host. Without it the virtualizer
// owns a private loop, which the host must still flush; see Loop.
func WithLoop(l *frame.Loop) Option {
	return func(o *options) { o.loop = l }
}

// WithOnChange is called after every published window and on every change
// of the scrolling state.
func WithOnChange(fn func()) Option {
	return func(o *options) { o.onChange = fn }
}

// WithLogger overrides the package default logger for one virtualizer.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
