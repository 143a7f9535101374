package term

import (
	"math"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-virtual/ui/host"
)

// WheelStep is how many lines (or columns) one wheel notch scrolls.
const WheelStep = 3

// Pane is a scroll container measured in terminal cells. Its scroll position
// is clamped to [0, content-viewport] on both axes.
type Pane struct {
	doc *Document

	width, height      int
	contentW, contentH float64
	top, left          float64
	detached           bool
}

// NewPane returns a Pane of the given viewport size attached to doc.
func NewPane(doc *Document, width, height int) *Pane {
	return &Pane{doc: doc, width: max(0, width), height: max(0, height)}
}

// Attr implements host.Element. Panes carry no attributes.
func (p *Pane) Attr(string) (string, bool) { return "", false }

// Connected implements host.Element.
func (p *Pane) Connected() bool { return !p.detached }

// Measure implements host.Element and reports the viewport size.
func (p *Pane) Measure() host.Observation {
	s := host.Size{Width: float64(p.width), Height: float64(p.height)}
	return host.Observation{Box: s, HasBox: true, Rect: s}
}

// ScrollTop implements host.ScrollContainer.
func (p *Pane) ScrollTop() float64 { return p.top }

// ScrollLeft implements host.ScrollContainer.
func (p *Pane) ScrollLeft() float64 { return p.left }

// ScrollBy implements host.ScrollContainer.
func (p *Pane) ScrollBy(dx, dy float64) { p.ScrollTo(p.top+dy, p.left+dx) }

// ScrollTo moves the viewport, clamps it and notifies scroll subscribers if
// the position changed.
func (p *Pane) ScrollTo(top, left float64) {
	top, left = p.clamp(top, left)
	if top == p.top && left == p.left {
		return
	}
	p.top, p.left = top, left
	p.doc.scrolled(p)
}

// Size returns the viewport size in cells.
func (p *Pane) Size() (width, height int) { return p.width, p.height }

// ContentSize returns the scrollable content size last set.
func (p *Pane) ContentSize() (width, height float64) { return p.contentW, p.contentH }

// SetSize resizes the viewport and notifies size observers.
func (p *Pane) SetSize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.doc.resized(p)
	p.ScrollTo(p.top, p.left)
}

// SetContentSize sets the scrollable extent, typically the virtualizer's
// total width and height, and re-clamps the scroll position.
func (p *Pane) SetContentSize(width, height float64) {
	p.contentW, p.contentH = math.Max(0, width), math.Max(0, height)
	p.ScrollTo(p.top, p.left)
}

// Detach marks the pane as removed from the screen.
func (p *Pane) Detach() { p.detached = true }

// AtTop reports whether the viewport shows the first line.
func (p *Pane) AtTop() bool { return p.top <= 0 }

// AtBottom reports whether the viewport shows the last line.
func (p *Pane) AtBottom() bool { return p.top >= p.maxTop() }

// ScrollDown scrolls down by lines.
func (p *Pane) ScrollDown(lines int) { p.ScrollBy(0, float64(lines)) }

// ScrollUp scrolls up by lines.
func (p *Pane) ScrollUp(lines int) { p.ScrollBy(0, -float64(lines)) }

// ScrollRight scrolls right by cols.
func (p *Pane) ScrollRight(cols int) { p.ScrollBy(float64(cols), 0) }

// ScrollLeftBy scrolls left by cols.
func (p *Pane) ScrollLeftBy(cols int) { p.ScrollBy(-float64(cols), 0) }

// PageDown scrolls down by one full viewport height.
func (p *Pane) PageDown() { p.ScrollDown(p.height) }

// PageUp scrolls up by one full viewport height.
func (p *Pane) PageUp() { p.ScrollUp(p.height) }

// HalfPageDown scrolls down by half the viewport height.
func (p *Pane) HalfPageDown() { p.ScrollDown(p.height / 2) }

// HalfPageUp scrolls up by half the viewport height.
func (p *Pane) HalfPageUp() { p.ScrollUp(p.height / 2) }

// ScrollToTop jumps to the first line.
func (p *Pane) ScrollToTop() { p.ScrollTo(0, p.left) }

// ScrollToBottom jumps to the last line.
func (p *Pane) ScrollToBottom() { p.ScrollTo(p.maxTop(), p.left) }

// Update handles mouse wheel events. Shift+wheel and horizontal wheels
// scroll sideways.
func (p *Pane) Update(msg tea.Msg) {
	wheel, ok := msg.(tea.MouseWheelMsg)
	if !ok {
		return
	}
	horizontal := wheel.Mod&tea.ModShift != 0
	switch wheel.Button {
	case tea.MouseWheelUp:
		if horizontal {
			p.ScrollLeftBy(WheelStep)
		} else {
			p.ScrollUp(WheelStep)
		}
	case tea.MouseWheelDown:
		if horizontal {
			p.ScrollRight(WheelStep)
		} else {
			p.ScrollDown(WheelStep)
		}
	case tea.MouseWheelLeft:
		p.ScrollLeftBy(WheelStep)
	case tea.MouseWheelRight:
		p.ScrollRight(WheelStep)
	}
}

func (p *Pane) maxTop() float64  { return math.Max(0, p.contentH-float64(p.height)) }
func (p *Pane) maxLeft() float64 { return math.Max(0, p.contentW-float64(p.width)) }

func (p *Pane) clamp(top, left float64) (float64, float64) {
	top = math.Min(math.Max(0, top), p.maxTop())
	left = math.Min(math.Max(0, left), p.maxLeft())
	return top, left
}
