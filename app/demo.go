package app

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/config"
	"github.com/miosa/osa-virtual/style"
	"github.com/miosa/osa-virtual/ui/axis"
	"github.com/miosa/osa-virtual/ui/common"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/status"
	"github.com/miosa/osa-virtual/ui/term"
)

// demo is one virtualized view the shell can show. Implementations own their
// pane, node pool and virtualizer; the shell owns the frame loop.
type demo interface {
	Kind() Demo
	Pane() *term.Pane

	// Sync mounts the current window and measures what was mounted.
	Sync()
	// View renders the pane and its scrollbars.
	View() string
	Stats() status.Stats
	Items() string
	HScroll() bool

	Resize(width, height int)
	Retheme()
	Reverse()
	AddRow()
	DropRow()
	Close()
}

// env is what every demo is built from.
type env struct {
	doc     *term.Document
	loop    *frame.Loop
	cfg     config.Config
	glamour string
	width   int
	height  int
}

func newDemo(kind Demo, e env) (demo, error) {
	if kind == DemoGrid {
		d, err := newGridDemo(e)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	d, err := newListDemo(e)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// flow places nodes one below the other starting at the first slot's offset.
// Mounted rows take their real line count, so content under a row that just
// grew moves with it in the same frame the scroll offset is corrected.
func flow(slots []axis.Slot, nodes []*term.Node, x float64) []term.Block {
	if len(slots) == 0 {
		return nil
	}
	y := slots[0].Offset
	blocks := make([]term.Block, len(nodes))
	for i, n := range nodes {
		lines := n.Lines()
		blocks[i] = term.Block{X: x, Y: y, Lines: lines}
		y += float64(len(lines))
	}
	return blocks
}

// withScrollbar appends the vertical scrollbar column to a composed pane.
func withScrollbar(pane string, height int, total, top float64) string {
	bar := common.Scrollbar(height, int(total), int(top))
	if bar == "" {
		bar = strings.TrimSuffix(strings.Repeat(" \n", height), "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pane, bar)
}

// glamourStyle maps the active theme to a glamour standard style.
func glamourStyle() string {
	switch {
	case style.IsPlain():
		return "notty"
	case style.IsDark():
		return "dark"
	default:
		return "light"
	}
}

// reversed returns a permutation of 0..n-1 in reverse order.
func reversed(order []int) []int {
	out := make([]int, len(order))
	for i, id := range order {
		out[len(order)-1-i] = id
	}
	return out
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
