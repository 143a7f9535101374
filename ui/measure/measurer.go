// Package measure owns the measurement cache and keeps the viewport visually
// stable while estimated sizes are replaced by measured ones.
//
// Reports arrive asynchronously relative to renders, so the Measurer never
// uses values captured at registration time. It reads the latest published
// layout and scroll offset from a snapshot.Cell that its owner refreshes
// right before every externally visible commit.
package measure

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/snapshot"
)

// ErrUnresolvableIndex is returned for a report whose index does not map to
// any slot of the latest layout. Such reports are dropped.
var ErrUnresolvableIndex = errors.New("measure: unresolvable index")

// State is the layout snapshot a Measurer works against.
type State struct {
	Slots        []axis.Slot
	ScrollOffset float64
}

// Scroller moves the external scroll position along the measured axis.
type Scroller interface {
	ScrollBy(delta float64)
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(delta float64)

// ScrollBy calls f(delta).
func (f ScrollerFunc) ScrollBy(delta float64) { f(delta) }

// Outcome describes what a report did.
type Outcome int

const (
	OutcomeIgnored     Outcome = iota // nothing changed
	OutcomeCached                     // cache updated, scroll untouched
	OutcomeCompensated                // scroll corrected, then cache updated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeCompensated:
		return "compensated"
	default:
		return "ignored"
	}
}

// Opts configures a Measurer.
type Opts struct {
	// Cache receives measured sizes. Required.
	Cache *Cache
	// State is read on every report. Required.
	State *snapshot.Cell[State]
	// Scroller applies scroll compensation. Nil disables compensation.
	Scroller Scroller
	// Logger receives diagnostics for dropped reports. Nil discards them.
	Logger *slog.Logger
	// OnCommit is called after every report that changed the cache.
	OnCommit func(index int, o Outcome)
}

// Measurer is the measurement and scroll-compensation subsystem for one axis.
// It is not safe for concurrent use.
type Measurer struct {
	cache    *Cache
	state    *snapshot.Cell[State]
	scroller Scroller
	logger   *slog.Logger
	onCommit func(int, Outcome)
}

// NewMeasurer returns a Measurer for opts.
func NewMeasurer(opts Opts) *Measurer {
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	if opts.State == nil {
		opts.State = snapshot.New(State{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Measurer{
		cache:    opts.Cache,
		state:    opts.State,
		scroller: opts.Scroller,
		logger:   opts.Logger,
		onCommit: opts.OnCommit,
	}
}

// Cache returns the cache the Measurer writes to.
func (m *Measurer) Cache() *Cache { return m.cache }

// KeyAt resolves index against the latest layout.
func (m *Measurer) KeyAt(index int) (string, bool) {
	slots := m.state.Get().Slots
	if index < 0 || index >= len(slots) {
		return "", false
	}
	return slots[index].Key, true
}

// ReportSize records the measured size of the item at index.
//
// A first-paint report (fromResize false) only counts once per key. A report
// equal to the cached size is a no-op. Otherwise the difference to the
// previously resolved size is computed; when the latest scroll offset is
// past the slot's offset the scroll position is advanced by that difference
// before the cache is committed, so content above the viewport does not
// shift on screen.
func (m *Measurer) ReportSize(index int, measured float64, fromResize bool) (Outcome, error) {
	st := m.state.Get()
	if index < 0 || index >= len(st.Slots) {
		m.logger.Warn("dropping size report for unresolvable index",
			"index", index,
			"slots", len(st.Slots),
			"size", measured)
		return OutcomeIgnored, fmt.Errorf("%w: %d", ErrUnresolvableIndex, index)
	}
	measured = sanitize(measured)
	slot := st.Slots[index]

	cached, has := m.cache.Get(slot.Key)
	if has && !fromResize {
		return OutcomeIgnored, nil
	}
	if has && cached == measured {
		return OutcomeIgnored, nil
	}

	prev := slot.Size
	if has {
		prev = cached
	}
	delta := measured - prev

	outcome := OutcomeCached
	if delta != 0 && m.scroller != nil && st.ScrollOffset > slot.Offset {
		m.scroller.ScrollBy(delta)
		m.state.Update(func(s *State) { s.ScrollOffset += delta })
		outcome = OutcomeCompensated
	}
	m.cache.Set(slot.Key, measured)

	m.logger.Debug("size committed",
		"index", index,
		"key", slot.Key,
		"size", measured,
		"delta", delta,
		"outcome", outcome)
	if m.onCommit != nil {
		m.onCommit(index, outcome)
	}
	return outcome, nil
}
