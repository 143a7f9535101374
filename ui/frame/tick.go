package frame

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-virtual/msg"
)

// Wake starts the frame tick if work is pending and no tick is in flight.
// Call it at the end of every Update that may have requested work; it
// returns nil when there is nothing to do.
func (l *Loop) Wake() tea.Cmd {
	if l.closed || l.ticking || !l.Pending() {
		return nil
	}
	l.ticking = true
	return l.tick()
}

// Handle flushes the loop for a frame addressed to it and keeps ticking
// while work remains. Frames for other loops return nil.
func (l *Loop) Handle(f msg.Frame) tea.Cmd {
	if f.LoopID != l.id {
		return nil
	}
	l.ticking = false
	l.Flush(f.Time)
	return l.Wake()
}

func (l *Loop) tick() tea.Cmd {
	id := l.id
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return msg.Frame{LoopID: id, Time: t}
	})
}
