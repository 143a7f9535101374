// Package frame coalesces bursts of work into at most one run per rendered
// frame.
//
// A Loop is an explicit task queue flushed by the host's frame callback.
// Tasks are keyed: requesting a key that is already pending does not queue a
// second run, so dozens of scroll events between two frames still produce a
// single recomputation. The Loop also carries host-loop timers so debounce
// timers fire on the same goroutine, at the same frame boundary, as the rest
// of the work.
//
// Lifecycle:
//
//	l := frame.NewLoop()
//	l.Request("recompute", v.recompute) // any number of times per frame
//	l.Flush(time.Now())                  // from the host's frame callback
//	l.Close()                            // drops everything still pending
package frame

import (
	"sort"
	"sync/atomic"
	"time"
)

// DefaultFPS is the frame rate used by the bubbletea binding.
const DefaultFPS = 60

// idCounter gives each Loop a unique ID so frame messages don't cross-talk
// between loops living in the same program.
var idCounter atomic.Int64

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for NewLoop.
type Option func(*Loop)

// WithClock replaces time.Now as the loop's notion of current time.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// WithFPS sets the tick rate of the bubbletea binding.
func WithFPS(fps int) Option {
	return func(l *Loop) {
		if fps > 0 {
			l.interval = time.Second / time.Duration(fps)
		}
	}
}

// ---------------------------------------------------------------------------
// Loop
// ---------------------------------------------------------------------------

type task struct {
	key string
	fn  func()
}

type timer struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
}

// Loop is a per-frame task queue with host-loop timers.
// It is not safe for concurrent use.
type Loop struct {
	id       int64
	now      func() time.Time
	interval time.Duration

	tasks  []task
	queued map[string]int // key -> index into tasks

	timers []*timer
	seq    uint64

	ticking bool
	closed  bool
	frames  uint64
}

// NewLoop returns an empty Loop.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		id:       idCounter.Add(1),
		now:      time.Now,
		interval: time.Second / DefaultFPS,
		queued:   make(map[string]int),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// ID identifies this loop in frame messages.
func (l *Loop) ID() int64 { return l.id }

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time { return l.now() }

// Frames returns how many times Flush has run.
func (l *Loop) Frames() uint64 { return l.frames }

// Request schedules fn under key for the next flush. If key is already
// pending, fn replaces the queued function but keeps its position.
func (l *Loop) Request(key string, fn func()) {
	if l.closed || fn == nil {
		return
	}
	if i, ok := l.queued[key]; ok {
		l.tasks[i].fn = fn
		return
	}
	l.queued[key] = len(l.tasks)
	l.tasks = append(l.tasks, task{key: key, fn: fn})
}

// Cancel drops a pending task. Unknown keys are ignored.
func (l *Loop) Cancel(key string) {
	i, ok := l.queued[key]
	if !ok {
		return
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	delete(l.queued, key)
	for j := i; j < len(l.tasks); j++ {
		l.queued[l.tasks[j].key] = j
	}
}

// IsQueued reports whether key is pending.
func (l *Loop) IsQueued(key string) bool {
	_, ok := l.queued[key]
	return ok
}

// AfterFunc runs fn during the first flush at or after d from now.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (stop func()) {
	if l.closed {
		return func() {}
	}
	l.seq++
	t := &timer{at: l.now().Add(d), seq: l.seq, fn: fn}
	l.timers = append(l.timers, t)
	return func() { t.stopped = true }
}

// Pending reports whether any task or live timer is waiting.
func (l *Loop) Pending() bool {
	if l.closed {
		return false
	}
	if len(l.tasks) > 0 {
		return true
	}
	for _, t := range l.timers {
		if !t.stopped {
			return true
		}
	}
	return false
}

// Flush runs due timers in deadline order, then every queued task in the
// order its key was first requested. Work scheduled while flushing waits for
// the next flush. It returns the number of functions run.
func (l *Loop) Flush(now time.Time) int {
	if l.closed {
		return 0
	}
	l.frames++
	ran := 0

	var due, keep []*timer
	for _, t := range l.timers {
		switch {
		case t.stopped:
		case !t.at.After(now):
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	l.timers = keep
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		if l.closed {
			return ran
		}
		if t.stopped {
			continue
		}
		t.fn()
		ran++
	}

	tasks := l.tasks
	l.tasks = nil
	l.queued = make(map[string]int)
	for _, t := range tasks {
		if l.closed {
			return ran
		}
		t.fn()
		ran++
	}
	return ran
}

// Close drops all pending tasks and timers. Nothing runs afterwards.
func (l *Loop) Close() {
	l.closed = true
	l.tasks = nil
	l.queued = make(map[string]int)
	for _, t := range l.timers {
		t.stopped = true
	}
	l.timers = nil
}

// Closed reports whether Close was called.
func (l *Loop) Closed() bool { return l.closed }
