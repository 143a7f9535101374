// Package snapshot holds the latest value of mutable state for callbacks that
// run after the value was first handed out.
//
// A Cell is written by its owner right before the owner publishes anything
// externally visible, and read by asynchronous callbacks (size observers,
// timers) at the moment they fire. Callbacks therefore never act on values
// captured when they were registered.
package snapshot

// Cell is a single mutable slot. The zero value holds the zero T and is
// ready to use. A Cell is not safe for concurrent use; owner and readers
// are expected to run on the same goroutine.
type Cell[T any] struct {
	value   T
	version uint64
}

// New returns a Cell holding v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v, version: 1}
}

// Set replaces the held value.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.version++
}

// Get returns the most recently stored value.
func (c *Cell[T]) Get() T { return c.value }

// Update applies fn to the held value in place.
func (c *Cell[T]) Update(fn func(*T)) {
	fn(&c.value)
	c.version++
}

// Version increments on every Set or Update. Readers can use it to tell
// whether the value moved since they last looked.
func (c *Cell[T]) Version() uint64 { return c.version }
