// Package style holds the color palette and lipgloss styles shared by the
// demo shells.
package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	HeaderBgColor color.Color = lipgloss.Color("#1F2937")
	ZebraBgColor  color.Color = lipgloss.Color("#111827")

	// Gradient endpoints, default to dark theme violet→cyan
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")

	plain bool
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	Title       lipgloss.Style
	TitleDetail lipgloss.Style

	// List rows
	RowBorder lipgloss.Style

	// Grid
	CellHeader lipgloss.Style
	CellZebra  lipgloss.Style
	CellPlain  lipgloss.Style

	// Status bar
	StatusBar       lipgloss.Style
	StatusKey       lipgloss.Style
	StatusValue     lipgloss.Style
	StatusScrolling lipgloss.Style
	StatusIdle      lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	HeaderBgColor = t.HeaderBg
	ZebraBgColor = t.ZebraBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	plain = t.Plain
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// IsPlain reports whether the current theme renders without color.
func IsPlain() bool { return plain }

func rebuildStyles() {
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	TitleDetail = lipgloss.NewStyle().Foreground(Muted)

	RowBorder = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Border).
		PaddingLeft(1)

	CellHeader = lipgloss.NewStyle().Background(HeaderBgColor).Foreground(Primary).Bold(true)
	CellZebra = lipgloss.NewStyle().Background(ZebraBgColor)
	CellPlain = lipgloss.NewStyle()

	StatusBar = lipgloss.NewStyle().Foreground(Muted)
	StatusKey = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	StatusScrolling = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	StatusIdle = lipgloss.NewStyle().Foreground(Success)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
