package style

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor mixes a and b channel by channel; t is clamped to [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	t = min(max(t, 0), 1)
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8(min(float64(x>>8)*(1-t)+float64(y>>8)*t, 255))
	}
	return color.NRGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

func hex(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8))
}

// Gradient colors each rune of text along the from→to ramp. Plain themes
// get the text unchanged apart from bold.
func Gradient(text string, from, to color.Color, bold bool) string {
	base := lipgloss.NewStyle().Bold(bold)
	if plain {
		return base.Render(text)
	}
	runes := []rune(text)
	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		sb.WriteString(base.Foreground(hex(LerpColor(from, to, t))).Render(string(r)))
	}
	return sb.String()
}

// TitleGradient renders s bold in the active theme's gradient.
func TitleGradient(s string) string { return Gradient(s, GradColorA, GradColorB, true) }

// Heat shades a cell background from the zebra color toward Primary.
func Heat(t float64) lipgloss.Style {
	if plain {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Background(hex(LerpColor(ZebraBgColor, Primary, t)))
}
