// Package term is a terminal host for the virtualizers: a scrollable Pane
// measured in terminal cells, rendered Nodes sized with lipgloss, and a
// compositor that paints the current window into the pane's viewport.
//
// Key properties:
//   - Document implements host.SizeObserver and host.ScrollSource and
//     delivers every notification synchronously on the caller's goroutine,
//     which for a bubbletea program is the Update goroutine.
//   - Pane clamps its scroll position to the content size it was told about,
//     so scrolling past the end is impossible.
//   - A Pool reuses one Node per item key across frames and detaches the
//     nodes that left the window.
package term

import (
	"github.com/miosa/osa-virtual/ui/host"
)

type sizeSub struct {
	id int
	fn func(host.Observation)
}

type scrollSub struct {
	id int
	fn func(top, left float64)
}

// Document routes size and scroll notifications from terminal elements to
// their subscribers. The zero value is not usable; construct with NewDocument.
type Document struct {
	sizeSubs   map[host.Element][]sizeSub
	scrollSubs map[host.ScrollContainer][]scrollSub
	nextID     int
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{
		sizeSubs:   make(map[host.Element][]sizeSub),
		scrollSubs: make(map[host.ScrollContainer][]scrollSub),
	}
}

// Observe implements host.SizeObserver.
func (d *Document) Observe(el host.Element, fn func(host.Observation)) (disconnect func()) {
	d.nextID++
	id := d.nextID
	d.sizeSubs[el] = append(d.sizeSubs[el], sizeSub{id: id, fn: fn})
	return func() {
		subs := d.sizeSubs[el]
		for i, s := range subs {
			if s.id == id {
				subs = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(subs) == 0 {
			delete(d.sizeSubs, el)
		} else {
			d.sizeSubs[el] = subs
		}
	}
}

// OnScroll implements host.ScrollSource.
func (d *Document) OnScroll(c host.ScrollContainer, fn func(top, left float64)) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.scrollSubs[c] = append(d.scrollSubs[c], scrollSub{id: id, fn: fn})
	return func() {
		subs := d.scrollSubs[c]
		for i, s := range subs {
			if s.id == id {
				subs = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(subs) == 0 {
			delete(d.scrollSubs, c)
		} else {
			d.scrollSubs[c] = subs
		}
	}
}

// Observed reports whether anything watches el.
func (d *Document) Observed(el host.Element) bool { return len(d.sizeSubs[el]) > 0 }

// Listeners returns the number of scroll subscriptions on c.
func (d *Document) Listeners(c host.ScrollContainer) int { return len(d.scrollSubs[c]) }

func (d *Document) resized(el host.Element) {
	subs := d.sizeSubs[el]
	if len(subs) == 0 {
		return
	}
	o := el.Measure()
	// Copy: a callback may disconnect itself.
	for _, s := range append([]sizeSub(nil), subs...) {
		s.fn(o)
	}
}

func (d *Document) scrolled(c host.ScrollContainer) {
	subs := d.scrollSubs[c]
	if len(subs) == 0 {
		return
	}
	top, left := c.ScrollTop(), c.ScrollLeft()
	for _, s := range append([]scrollSub(nil), subs...) {
		s.fn(top, left)
	}
}
