// Package header renders the one-line title bar of the demo shells.
package header

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/style"
)

// Model holds the state for the title bar.
type Model struct {
	version string
	demo    string
	items   string
	width   int
}

// NewHeader returns a Model with the given version string.
func NewHeader(version string) Model {
	return Model{version: version}
}

// SetDemo updates the displayed demo name and item description, e.g.
// "list" and "1000 rows".
func (m *Model) SetDemo(name, items string) {
	m.demo = name
	m.items = items
}

// SetWidth updates the terminal width used for truncation.
func (m *Model) SetWidth(w int) { m.width = w }

// Version returns the version string.
func (m Model) Version() string { return m.version }

// View returns the title line: "osa-virtual dev · list · 1000 rows · dark".
func (m Model) View() string {
	muted := lipgloss.NewStyle().Foreground(style.Muted)
	sep := muted.Render(" · ")

	parts := []string{style.TitleGradient("osa-virtual") + " " + style.TitleDetail.Render(m.version)}
	if m.demo != "" {
		parts = append(parts, style.Title.Render(m.demo))
	}
	if m.items != "" {
		parts = append(parts, style.TitleDetail.Render(m.items))
	}
	parts = append(parts, style.TitleDetail.Render(style.CurrentThemeName))

	line := strings.Join(parts, sep)
	if m.width > 0 && lipgloss.Width(line) > m.width {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// Items formats a count with its unit, e.g. "1,000 rows".
func Items(n int, unit string) string {
	return fmt.Sprintf("%s %s", thousands(n), unit)
}

func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + thousands(-n)
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
