// Package msg defines the tea.Msg types shared across packages.
package msg

import "time"

// -- Frames --

// Frame is delivered once per rendered frame to the loop identified by
// LoopID. Loops ignore frames that carry another loop's ID.
type Frame struct {
	LoopID int64
	Time   time.Time
}
