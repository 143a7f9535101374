package app

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // title line
	StatusHeight int
	HelpHeight   int
	PaneWidth    int // viewport width, excluding the scrollbar column
	PaneHeight   int // viewport height, excluding the horizontal scrollbar
}

const (
	// scrollbarWidth is reserved on the right of the pane.
	scrollbarWidth = 1

	// Minimum pane sizes; enforced even if the frame overflows the terminal.
	paneMinWidth  = 10
	paneMinHeight = 3
)

// ComputeLayout calculates the layout dimensions based on terminal size.
//
//   - Heights: header (1), status (1), help (helpLines), and one line for
//     the horizontal scrollbar when hscroll is set; the remainder goes to
//     the pane.
//   - Width: the terminal width minus the vertical scrollbar column.
func ComputeLayout(termW, termH, helpLines int, hscroll bool) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 1,
		StatusHeight: 1,
		HelpHeight:   max(helpLines, 1),
	}

	l.PaneWidth = max(termW-scrollbarWidth, paneMinWidth)

	reserved := l.HeaderHeight + l.StatusHeight + l.HelpHeight
	if hscroll {
		reserved++
	}
	l.PaneHeight = max(termH-reserved, paneMinHeight)
	return l
}
