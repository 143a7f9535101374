package term

import (
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/host"
)

// Node is one rendered item. Its size is the cell size of its content as
// lipgloss measures it.
type Node struct {
	doc       *Document
	attrs     map[string]string
	content   string
	width     int
	height    int
	connected bool
}

// NewNode returns a connected, empty Node.
func NewNode(doc *Document) *Node {
	return &Node{doc: doc, attrs: make(map[string]string), connected: true, height: 1}
}

// Attr implements host.Element.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute such as host.IndexAttr.
func (n *Node) SetAttr(name, value string) { n.attrs[name] = value }

// Connected implements host.Element.
func (n *Node) Connected() bool { return n.connected }

// Measure implements host.Element.
func (n *Node) Measure() host.Observation {
	s := host.Size{Width: float64(n.width), Height: float64(n.height)}
	return host.Observation{Box: s, HasBox: true, Rect: s}
}

// Content returns the rendered content.
func (n *Node) Content() string { return n.content }

// Lines returns the content split into lines.
func (n *Node) Lines() []string { return splitLines(n.content) }

// SetContent replaces the content and notifies size observers when the
// measured size changed.
func (n *Node) SetContent(s string) {
	if s == n.content {
		return
	}
	w, h := lipgloss.Width(s), lipgloss.Height(s)
	n.content = s
	if w == n.width && h == n.height {
		return
	}
	n.width, n.height = w, h
	if n.connected {
		n.doc.resized(n)
	}
}

// Detach removes the node from the render tree.
func (n *Node) Detach() { n.connected = false }

// ---------------------------------------------------------------------------
// Pool
// ---------------------------------------------------------------------------

// RenderFunc renders the item at slot.
type RenderFunc func(s axis.Slot) string

// Pool keeps one Node per item key across frames.
type Pool struct {
	doc   *Document
	nodes map[string]*Node
}

// NewPool returns an empty Pool.
func NewPool(doc *Document) *Pool {
	return &Pool{doc: doc, nodes: make(map[string]*Node)}
}

// Sync makes the pool hold exactly one connected Node per slot, tagged with
// the slot's index and holding render's output. Nodes whose key left the
// window are detached and forgotten. The returned nodes are in slot order.
func (p *Pool) Sync(slots []axis.Slot, render RenderFunc) []*Node {
	keep := make(map[string]*Node, len(slots))
	out := make([]*Node, len(slots))
	for i, s := range slots {
		n, ok := p.nodes[s.Key]
		if !ok {
			n = NewNode(p.doc)
		}
		n.SetAttr(host.IndexAttr, host.FormatIndex(s.Index))
		n.SetContent(render(s))
		keep[s.Key] = n
		out[i] = n
	}
	for key, n := range p.nodes {
		if _, ok := keep[key]; !ok {
			n.Detach()
		}
	}
	p.nodes = keep
	return out
}

// Node returns the live node for key.
func (p *Pool) Node(key string) (*Node, bool) {
	n, ok := p.nodes[key]
	return n, ok
}

// Len returns the number of live nodes.
func (p *Pool) Len() int { return len(p.nodes) }

// Clear detaches every node.
func (p *Pool) Clear() {
	for _, n := range p.nodes {
		n.Detach()
	}
	p.nodes = make(map[string]*Node)
}
