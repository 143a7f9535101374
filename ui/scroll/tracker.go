// Package scroll tracks whether a scroll container is actively scrolling.
//
// The Tracker is a two-state machine (idle, scrolling) debounced by a delay
// timer: the first scroll event in a burst flips it to scrolling, every
// further event restarts the timer, and the timer elapsing with no new event
// flips it back to idle. The state is a rendering hint only.
package scroll

import "time"

// DefaultDelay is how long the tracker waits after the last scroll event
// before reporting idle.
const DefaultDelay = 150 * time.Millisecond

// Scheduler runs fn once after d on the caller's event loop. The returned
// stop function cancels a pending run; calling it after fn ran is a no-op.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// Tracker is the debounced scrolling state machine.
// It is not safe for concurrent use.
type Tracker struct {
	sched     Scheduler
	delay     time.Duration
	onChange  func(scrolling bool)
	scrolling bool
	stop      func()
	// gen guards against a timer that fires after it was superseded.
	gen    uint64
	closed bool
}

// NewTracker returns an idle Tracker. A non-positive delay means DefaultDelay.
// onChange may be nil; when set it is called once per transition.
func NewTracker(s Scheduler, delay time.Duration, onChange func(scrolling bool)) *Tracker {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Tracker{sched: s, delay: delay, onChange: onChange}
}

// Scroll records one scroll event.
func (t *Tracker) Scroll() {
	if t.closed {
		return
	}
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	t.gen++
	gen := t.gen
	t.stop = t.sched.AfterFunc(t.delay, func() { t.settle(gen) })

	if !t.scrolling {
		t.scrolling = true
		t.emit()
	}
}

// Scrolling reports the current state.
func (t *Tracker) Scrolling() bool { return t.scrolling }

// Delay returns the debounce delay in use.
func (t *Tracker) Delay() time.Duration { return t.delay }

// Close cancels the pending timer. No transition is reported afterwards.
func (t *Tracker) Close() {
	t.closed = true
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Tracker) settle(gen uint64) {
	if t.closed || gen != t.gen {
		return
	}
	t.stop = nil
	if t.scrolling {
		t.scrolling = false
		t.emit()
	}
}

func (t *Tracker) emit() {
	if t.onChange != nil {
		t.onChange(t.scrolling)
	}
}
