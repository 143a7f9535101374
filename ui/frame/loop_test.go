package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/miosa/osa-virtual/msg"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLoop() (*Loop, *fakeClock) {
	c := &fakeClock{t: epoch}
	return NewLoop(WithClock(c.now)), c
}

func TestLoop_CoalescesRequestsPerKey(t *testing.T) {
	l, c := newTestLoop()
	runs := 0
	for i := 0; i < 40; i++ {
		l.Request("recompute", func() { runs++ })
	}
	require.True(t, l.Pending())
	require.Equal(t, 1, l.Flush(c.now()))
	require.Equal(t, 1, runs)
	require.False(t, l.Pending())
}

func TestLoop_KeepsFirstRequestOrder(t *testing.T) {
	l, c := newTestLoop()
	var order []string
	l.Request("scroll-adjust", func() { order = append(order, "adjust") })
	l.Request("recompute", func() { order = append(order, "recompute") })
	l.Request("scroll-adjust", func() { order = append(order, "adjust2") })
	l.Flush(c.now())
	require.Equal(t, []string{"adjust2", "recompute"}, order)
}

func TestLoop_WorkRequestedDuringFlushWaits(t *testing.T) {
	l, c := newTestLoop()
	runs := 0
	var again func()
	again = func() {
		runs++
		l.Request("again", again)
	}
	l.Request("again", again)
	l.Flush(c.now())
	require.Equal(t, 1, runs)
	require.True(t, l.IsQueued("again"))
	l.Flush(c.now())
	require.Equal(t, 2, runs)
}

func TestLoop_Cancel(t *testing.T) {
	l, c := newTestLoop()
	var order []string
	l.Request("a", func() { order = append(order, "a") })
	l.Request("b", func() { order = append(order, "b") })
	l.Request("c", func() { order = append(order, "c") })
	l.Cancel("b")
	l.Cancel("missing")
	l.Request("c", func() { order = append(order, "c2") })
	l.Flush(c.now())
	require.Equal(t, []string{"a", "c2"}, order)
}

func TestLoop_TimersFireInDeadlineOrderBeforeTasks(t *testing.T) {
	l, c := newTestLoop()
	var order []string
	l.Request("task", func() { order = append(order, "task") })
	l.AfterFunc(20*time.Millisecond, func() { order = append(order, "t20") })
	l.AfterFunc(10*time.Millisecond, func() { order = append(order, "t10") })
	stop := l.AfterFunc(15*time.Millisecond, func() { order = append(order, "t15") })
	stop()

	l.Flush(c.now())
	require.Equal(t, []string{"task"}, order, "timers are not due yet")

	c.advance(25 * time.Millisecond)
	l.Flush(c.now())
	require.Equal(t, []string{"task", "t10", "t20"}, order)
	require.False(t, l.Pending())
}

func TestLoop_CloseDropsEverything(t *testing.T) {
	l, c := newTestLoop()
	ran := false
	l.Request("x", func() { ran = true })
	l.AfterFunc(time.Millisecond, func() { ran = true })
	l.Close()
	c.advance(time.Second)
	require.Equal(t, 0, l.Flush(c.now()))
	require.False(t, ran)
	require.False(t, l.Pending())

	l.Request("y", func() { ran = true })
	l.Flush(c.now())
	require.False(t, ran)
	require.True(t, l.Closed())
}

func TestLoop_CloseDuringFlushStopsRemainingWork(t *testing.T) {
	l, c := newTestLoop()
	second := false
	l.Request("first", func() { l.Close() })
	l.Request("second", func() { second = true })
	l.Flush(c.now())
	require.False(t, second)
}

// ---------------------------------------------------------------------------
// bubbletea binding
// ---------------------------------------------------------------------------

func TestWake_NilWhenIdle(t *testing.T) {
	l, _ := newTestLoop()
	require.Nil(t, l.Wake())
}

func TestWake_SingleTickInFlight(t *testing.T) {
	l, _ := newTestLoop()
	l.Request("x", func() {})
	require.NotNil(t, l.Wake())
	require.Nil(t, l.Wake(), "a second Wake must not start another tick")
}

func TestHandle_IgnoresOtherLoops(t *testing.T) {
	l, c := newTestLoop()
	ran := false
	l.Request("x", func() { ran = true })
	l.Wake()
	require.Nil(t, l.Handle(msg.Frame{LoopID: l.ID() + 1000, Time: c.now()}))
	require.False(t, ran)

	require.Nil(t, l.Handle(msg.Frame{LoopID: l.ID(), Time: c.now()}))
	require.True(t, ran)
	require.Equal(t, uint64(1), l.Frames())
}

func TestHandle_KeepsTickingWhileTimerPending(t *testing.T) {
	l, c := newTestLoop()
	l.AfterFunc(50*time.Millisecond, func() {})
	require.NotNil(t, l.Wake())
	require.NotNil(t, l.Handle(msg.Frame{LoopID: l.ID(), Time: c.now()}))
	c.advance(time.Second)
	require.Nil(t, l.Handle(msg.Frame{LoopID: l.ID(), Time: c.now()}))
}
