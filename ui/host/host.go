// Package host declares the collaborators a virtualizer talks to: rendered
// item elements, the scroll container, the size observer and the scroll
// source. The engine only depends on these interfaces; package term provides
// a terminal implementation.
//
// Every callback is expected to be delivered on the host's event-loop
// goroutine.
package host

import "strconv"

// IndexAttr is the attribute a host sets on each rendered item's root element
// so a measurement callback can map the element back to its position.
const IndexAttr = "data-index"

// FormatIndex renders an index for IndexAttr.
func FormatIndex(i int) string { return strconv.Itoa(i) }

// ParseIndex reads IndexAttr from el. ok is false when the attribute is
// missing, unparseable or negative.
func ParseIndex(el Element) (index int, ok bool) {
	raw, found := el.Attr(IndexAttr)
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Size is a width/height pair in host units (pixels, terminal cells).
type Size struct {
	Width  float64
	Height float64
}

// Observation is one size reading. Hosts that can report a precise
// border-box size set Box and HasBox; Rect is the generic bounding
// rectangle and is always populated.
type Observation struct {
	Box    Size
	HasBox bool
	Rect   Size
}

// Size returns the box reading when present, otherwise the bounding rect.
func (o Observation) Size() Size {
	if o.HasBox {
		return o.Box
	}
	return o.Rect
}

// Element is a handle to something the host rendered.
type Element interface {
	// Attr returns an annotation set by the host, such as IndexAttr.
	Attr(name string) (string, bool)
	// Connected reports whether the element is still part of the render tree.
	Connected() bool
	// Measure reads the element's settled size.
	Measure() Observation
}

// ScrollContainer is the element whose scroll position and size drive the
// viewport.
type ScrollContainer interface {
	Element
	ScrollTop() float64
	ScrollLeft() float64
	// ScrollBy moves the scroll position. Hosts deliver the resulting scroll
	// event through their ScrollSource like any other scroll.
	ScrollBy(dx, dy float64)
}

// SizeObserver notifies size changes of an element until disconnected.
type SizeObserver interface {
	Observe(el Element, fn func(Observation)) (disconnect func())
}

// ScrollSource notifies scroll position changes of a container until
// unsubscribed.
type ScrollSource interface {
	OnScroll(c ScrollContainer, fn func(top, left float64)) (unsubscribe func())
}
