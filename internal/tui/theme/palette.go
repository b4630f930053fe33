package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Now         lipgloss.Color
	Warning     lipgloss.Color

	EventBg      lipgloss.Color
	EventBgAlt   lipgloss.Color // adjacent lanes
	AllDayBg     lipgloss.Color
	DisabledBg   lipgloss.Color
	TextOnEvent  lipgloss.Color
	TextOnAllDay lipgloss.Color
	TextOnAccent lipgloss.Color

	isLight bool
	bg      string
	fg      string
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	eventBgHex := blockBg(t.Event, t.Bg, isLight)
	allDayBgHex := blockBg(t.AllDay, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Now:         lipgloss.Color(t.Now),
		Warning:     lipgloss.Color(t.Warning),

		EventBg:      lipgloss.Color(eventBgHex),
		EventBgAlt:   lipgloss.Color(alternateShade(eventBgHex, isLight)),
		AllDayBg:     lipgloss.Color(allDayBgHex),
		DisabledBg:   lipgloss.Color(t.Disabled),
		TextOnEvent:  lipgloss.Color(chooseTextColor(eventBgHex, t.Bg, t.Fg)),
		TextOnAllDay: lipgloss.Color(chooseTextColor(allDayBgHex, t.Bg, t.Fg)),
		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),

		isLight: isLight,
		bg:      t.Bg,
		fg:      t.Fg,
	}
}

// EventColors returns the background and text colors for an event with its
// own hex color. Anything that is not a #rrggbb color gets the theme colors.
func (p *Palette) EventColors(hex string, alt bool) (bg, fg lipgloss.Color) {
	if len(hex) != 7 || hex[0] != '#' {
		if alt {
			return p.EventBgAlt, p.TextOnEvent
		}
		return p.EventBg, p.TextOnEvent
	}
	base := blockBg(hex, p.bg, p.isLight)
	if alt {
		base = alternateShade(base, p.isLight)
	}
	return lipgloss.Color(base), lipgloss.Color(chooseTextColor(base, p.bg, p.fg))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// blockBg is the background of an event block drawn in accent.
func blockBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor halves the brightness of a hex color for block backgrounds,
// keeping each channel above a floor so blocks stay visible on dark themes.
func darkenColor(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)

	const floor = 40
	return formatHexColor(max(r/2, floor), max(g/2, floor), max(b/2, floor))
}

// alternateShade tells side-by-side lanes apart.
func alternateShade(hex string, isLight bool) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
