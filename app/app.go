// Package app is the bubbletea shell around the list and grid demos.
package app

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/config"
	"github.com/miosa/osa-virtual/msg"
	"github.com/miosa/osa-virtual/style"
	"github.com/miosa/osa-virtual/ui/frame"
	"github.com/miosa/osa-virtual/ui/header"
	"github.com/miosa/osa-virtual/ui/status"
	"github.com/miosa/osa-virtual/ui/term"
)

// Model is the root bubbletea model.
type Model struct {
	keys   KeyMap
	help   help.Model
	header header.Model
	status status.Model
	layout Layout

	cfg  config.Config
	doc  *term.Document
	loop *frame.Loop
	kind Demo
	demo demo
	err  error

	width, height int
}

// New builds the shell showing kind. The demo is created with a placeholder
// size and resized on the first WindowSizeMsg.
func New(cfg config.Config, kind Demo, version string) Model {
	m := Model{
		keys:   DefaultKeyMap(),
		help:   help.New(),
		header: header.NewHeader(version),
		status: status.New(),
		cfg:    cfg,
		doc:    term.NewDocument(),
		loop:   frame.NewLoop(frame.WithFPS(cfg.FPS)),
		kind:   kind,
		width:  80,
		height: 24,
	}
	m.styleHelp()
	m.layout = ComputeLayout(m.width, m.height, 1, kind == DemoGrid)
	m.demo, m.err = newDemo(kind, m.env())
	if m.err == nil {
		m.demo.Sync()
	}
	m.refreshChrome()
	return m
}

// Err returns the error that prevented the demo from starting, if any.
func (m Model) Err() error { return m.err }

// Close releases the demo and stops the frame loop.
func (m Model) Close() {
	if m.demo != nil {
		m.demo.Close()
	}
	m.loop.Close()
}

func (m Model) env() env {
	return env{
		doc:     m.doc,
		loop:    m.loop,
		cfg:     m.cfg,
		glamour: glamourStyle(),
		width:   m.layout.PaneWidth,
		height:  m.layout.PaneHeight,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return tea.RequestWindowSize() }, m.loop.Wake())
}

// Update implements tea.Model.
func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if k, ok := rawMsg.(tea.KeyPressMsg); ok && key.Matches(k, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.relayout()

	case msg.Frame:
		cmd = m.loop.Handle(v)

	case tea.MouseWheelMsg:
		m.demo.Pane().Update(v)

	case tea.KeyPressMsg:
		var quit bool
		m, quit = m.handleKey(v)
		if quit {
			m.Close()
			return m, tea.Quit
		}
	}

	m.demo.Sync()
	m.refreshChrome()
	return m, tea.Batch(cmd, m.loop.Wake())
}

func (m Model) handleKey(k tea.KeyPressMsg) (Model, bool) {
	p := m.demo.Pane()
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, true
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
	case key.Matches(k, m.keys.Switch):
		m.switchDemo(m.kind.next())
	case key.Matches(k, m.keys.Theme):
		m.nextTheme()
	case key.Matches(k, m.keys.ScrollDown):
		p.ScrollDown(1)
	case key.Matches(k, m.keys.ScrollUp):
		p.ScrollUp(1)
	case key.Matches(k, m.keys.HalfPageDown):
		p.HalfPageDown()
	case key.Matches(k, m.keys.HalfPageUp):
		p.HalfPageUp()
	case key.Matches(k, m.keys.PageDown):
		p.PageDown()
	case key.Matches(k, m.keys.PageUp):
		p.PageUp()
	case key.Matches(k, m.keys.ScrollTop):
		p.ScrollToTop()
	case key.Matches(k, m.keys.ScrollBottom):
		p.ScrollToBottom()
	case key.Matches(k, m.keys.ScrollLeft):
		p.ScrollLeftBy(term.WheelStep)
	case key.Matches(k, m.keys.ScrollRight):
		p.ScrollRight(term.WheelStep)
	case key.Matches(k, m.keys.Reverse):
		m.demo.Reverse()
	case key.Matches(k, m.keys.AddRow):
		m.demo.AddRow()
	case key.Matches(k, m.keys.DropRow):
		m.demo.DropRow()
	}
	return m, false
}

func (m *Model) switchDemo(kind Demo) {
	prev := m.layout
	m.layout = ComputeLayout(m.width, m.height, m.helpLines(), kind == DemoGrid)
	next, err := newDemo(kind, m.env())
	if err != nil {
		slog.Error("demo switch failed", "demo", kind, "err", err)
		m.layout = prev
		return
	}
	m.demo.Close()
	m.kind, m.demo = kind, next
	slog.Info("demo switched", "demo", kind)
}

func (m *Model) nextTheme() {
	names := style.ThemeNames
	i := 0
	for j, n := range names {
		if n == style.CurrentThemeName {
			i = j
			break
		}
	}
	style.SetTheme(names[(i+1)%len(names)])
	m.styleHelp()
	m.demo.Retheme()
}

func (m *Model) relayout() {
	m.layout = ComputeLayout(m.width, m.height, m.helpLines(), m.kind == DemoGrid)
	m.demo.Resize(m.layout.PaneWidth, m.layout.PaneHeight)
}

func (m Model) helpLines() int {
	if !m.help.ShowAll {
		return 1
	}
	n := 0
	for _, col := range m.keys.FullHelp() {
		n = max(n, len(col))
	}
	return n
}

func (m *Model) styleHelp() {
	m.help.Styles.ShortKey = style.HelpKey
	m.help.Styles.ShortDesc = style.HelpDesc
	m.help.Styles.ShortSeparator = style.HelpSeparator
	m.help.Styles.FullKey = style.HelpKey
	m.help.Styles.FullDesc = style.HelpDesc
	m.help.Styles.FullSeparator = style.HelpSeparator
}

func (m *Model) refreshChrome() {
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	if m.demo == nil {
		return
	}
	m.header.SetDemo(m.kind.String(), m.demo.Items())
	st := m.demo.Stats()
	st.Frame = m.loop.Frames()
	m.status.SetStats(st)
}

// View implements tea.Model. AltScreen and MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	if m.err != nil {
		return style.ErrorText.Render(m.err.Error()) + "\n" + style.Faint.Render("press q to quit")
	}
	parts := []string{
		m.header.View(),
		m.demo.View(),
		m.status.View(),
		m.help.View(m.keys),
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "\n"))
}
