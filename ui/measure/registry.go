package measure

import (
	"fmt"
	"log/slog"

	"github.com/miosa/osa-virtual/ui/host"
)

// Axis selects which dimension of an observation is the measured size.
type Axis int

const (
	AxisY Axis = iota // height
	AxisX             // width
)

func (a Axis) pick(s host.Size) float64 {
	if a == AxisX {
		return s.Width
	}
	return s.Height
}

type registration struct {
	key        string
	el         host.Element
	disconnect func()
}

// Registry is the explicit registration table of rendered item elements.
// Each rendered item's root element is registered through Measure, which
// reports its settled size and subscribes it to the size observer. Entries
// are keyed by item key and torn down explicitly: when an element detaches,
// when another element takes over its key, or on Close.
//
// Elements are used as map keys and must be comparable (pointer handles).
type Registry struct {
	measurer *Measurer
	observer host.SizeObserver
	axis     Axis
	logger   *slog.Logger

	byKey     map[string]*registration
	byElement map[host.Element]*registration
	closed    bool
}

// NewRegistry returns a Registry feeding m. A nil observer means elements
// are measured once and never watched for resizes.
func NewRegistry(m *Measurer, observer host.SizeObserver, a Axis) *Registry {
	return &Registry{
		measurer:  m,
		observer:  observer,
		axis:      a,
		logger:    m.logger,
		byKey:     make(map[string]*registration),
		byElement: make(map[host.Element]*registration),
	}
}

// Measure registers el and reports its settled size. The element must carry
// host.IndexAttr. Detached elements are unsubscribed and otherwise ignored.
func (r *Registry) Measure(el host.Element) error {
	if r.closed || el == nil {
		return nil
	}
	if !el.Connected() {
		r.release(el)
		return nil
	}

	index, ok := host.ParseIndex(el)
	if !ok {
		raw, _ := el.Attr(host.IndexAttr)
		r.logger.Warn("measured element has no usable index", "attr", host.IndexAttr, "value", raw)
		return fmt.Errorf("%w: %s=%q", ErrUnresolvableIndex, host.IndexAttr, raw)
	}
	key, ok := r.measurer.KeyAt(index)
	if !ok {
		r.logger.Warn("measured element index is out of range", "index", index)
		return fmt.Errorf("%w: %d", ErrUnresolvableIndex, index)
	}

	if reg, ok := r.byElement[el]; ok && reg.key != key {
		// The element now renders another item: move it under the new key.
		if r.byKey[reg.key] == reg {
			delete(r.byKey, reg.key)
		}
		reg.key = key
	}
	if other, ok := r.byKey[key]; ok && other.el != el {
		r.drop(other)
	}
	if _, ok := r.byElement[el]; !ok {
		reg := &registration{key: key, el: el}
		if r.observer != nil {
			reg.disconnect = r.observer.Observe(el, func(o host.Observation) { r.resized(el, o) })
		}
		r.byElement[el] = reg
	}
	r.byKey[key] = r.byElement[el]

	_, err := r.measurer.ReportSize(index, r.axis.pick(el.Measure().Size()), false)
	return err
}

// Prune disconnects every registration whose element left the render tree.
// It returns the number of registrations removed.
func (r *Registry) Prune() int {
	n := 0
	for el, reg := range r.byElement {
		if !el.Connected() {
			r.drop(reg)
			n++
		}
	}
	return n
}

// Len is the number of live registrations.
func (r *Registry) Len() int { return len(r.byElement) }

// Observed reports whether el is registered.
func (r *Registry) Observed(el host.Element) bool {
	_, ok := r.byElement[el]
	return ok
}

// Close disconnects every registration. Later callbacks are dropped.
func (r *Registry) Close() {
	r.closed = true
	for _, reg := range r.byElement {
		r.drop(reg)
	}
}

func (r *Registry) resized(el host.Element, o host.Observation) {
	if r.closed {
		return
	}
	if !el.Connected() {
		r.release(el)
		return
	}
	// Re-read the index: the element may render another position by now.
	index, ok := host.ParseIndex(el)
	if !ok {
		r.logger.Warn("resized element has no usable index", "attr", host.IndexAttr)
		return
	}
	// ReportSize logs its own drops.
	r.measurer.ReportSize(index, r.axis.pick(o.Size()), true)
}

func (r *Registry) release(el host.Element) {
	if reg, ok := r.byElement[el]; ok {
		r.drop(reg)
	}
}

func (r *Registry) drop(reg *registration) {
	if reg.disconnect != nil {
		reg.disconnect()
		reg.disconnect = nil
	}
	delete(r.byElement, reg.el)
	if r.byKey[reg.key] == reg {
		delete(r.byKey, reg.key)
	}
}
