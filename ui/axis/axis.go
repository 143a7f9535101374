// Package axis maps one scroll axis onto the window of items that must be
// rendered to cover a viewport.
//
// Compute is a pure function. Given an item count, a size resolver, the
// scroll offset, the viewport extent and an overscan margin, it lays out
// every slot along the axis in one linear pass and reports the inclusive
// index range [StartIndex, EndIndex] plus the total extent of the axis.
//
// Boundary convention: a slot starts the window when its far edge is
// strictly past the scroll offset, and ends the window when its far edge
// reaches the viewport end (inclusive). A zero-extent viewport therefore
// still yields one slot, and a scroll offset that lands exactly on a slot
// edge does not render the slot that just left the viewport.
package axis

import (
	"math"
	"sort"
	"strconv"
)

// NoIndex marks the absence of a window: every slot ends at or before the
// scroll offset.
const NoIndex = -1

// SizeFunc returns the size of the item at index along the axis.
type SizeFunc func(index int) float64

// KeyFunc returns the stable identity of the item at index.
type KeyFunc func(index int) string

// IndexKey is the default KeyFunc: the item's position is its identity.
func IndexKey(index int) string { return strconv.Itoa(index) }

// Slot is one item laid out along the axis.
type Slot struct {
	Key    string
	Index  int
	Offset float64
	Size   float64
}

// End is the far edge of the slot.
func (s Slot) End() float64 { return s.Offset + s.Size }

// Input is everything Compute depends on.
type Input struct {
	Count          int
	Size           SizeFunc
	Key            KeyFunc
	ScrollOffset   float64
	ViewportExtent float64
	Overscan       int
}

// Window is the result of one Compute pass. Slots holds every item, not just
// the visible ones, so hosts can position anything and size the scrollable
// area from TotalExtent.
type Window struct {
	StartIndex  int
	EndIndex    int
	Slots       []Slot
	TotalExtent float64
}

// Empty reports whether the window covers no slot.
func (w Window) Empty() bool { return w.StartIndex == NoIndex }

// Visible returns the slots in [StartIndex, EndIndex], or nil when the
// window is empty. The returned slice aliases Slots.
func (w Window) Visible() []Slot {
	if w.Empty() || len(w.Slots) == 0 {
		return nil
	}
	return w.Slots[w.StartIndex : w.EndIndex+1]
}

// Len is the number of slots in the window.
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.EndIndex - w.StartIndex + 1
}

// Slot returns the slot at index i.
func (w Window) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(w.Slots) {
		return Slot{}, false
	}
	return w.Slots[i], true
}

// Contains reports whether index i is inside the window.
func (w Window) Contains(i int) bool {
	return !w.Empty() && i >= w.StartIndex && i <= w.EndIndex
}

// IndexAt returns the index of the slot covering offset, using the same
// strict far-edge rule as the window start. Offsets before the first slot
// map to 0; offsets at or past TotalExtent return NoIndex.
func (w Window) IndexAt(offset float64) int {
	n := len(w.Slots)
	i := sort.Search(n, func(i int) bool { return w.Slots[i].End() > offset })
	if i == n {
		return NoIndex
	}
	return i
}

// Compute lays out the axis and resolves the window.
func Compute(in Input) Window {
	count := in.Count
	if count < 0 {
		count = 0
	}
	overscan := in.Overscan
	if overscan < 0 {
		overscan = 0
	}
	key := in.Key
	if key == nil {
		key = IndexKey
	}

	w := Window{
		StartIndex: NoIndex,
		EndIndex:   NoIndex,
		Slots:      make([]Slot, count),
	}
	if count == 0 {
		return w
	}

	rangeStart := in.ScrollOffset
	rangeEnd := in.ScrollOffset + in.ViewportExtent

	var total float64
	for i := 0; i < count; i++ {
		size := sanitize(in.Size(i))
		w.Slots[i] = Slot{Key: key(i), Index: i, Offset: total, Size: size}
		end := total + size
		if w.StartIndex == NoIndex && end > rangeStart {
			w.StartIndex = i
		}
		if w.StartIndex != NoIndex && w.EndIndex == NoIndex && end >= rangeEnd {
			w.EndIndex = i
		}
		total = end
	}
	w.TotalExtent = total

	if w.StartIndex == NoIndex {
		return w
	}
	if w.EndIndex == NoIndex {
		w.EndIndex = count - 1
	}
	w.StartIndex = max(0, w.StartIndex-overscan)
	w.EndIndex = min(count-1, w.EndIndex+overscan)
	return w
}

// sanitize maps negative and NaN sizes to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Fixed returns a SizeFunc that gives every item the same size.
func Fixed(size float64) SizeFunc {
	return func(int) float64 { return size }
}
