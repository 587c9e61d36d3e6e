package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

const (
	progressFilled = "━"
	progressEmpty  = "─"
)

// fallbackGray stands in for colors that are not #rrggbb (ANSI indexes).
var fallbackGray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ProgressBar renders a width-cell bar filled to percent (0-100). The filled
// cells take their color from a primary-to-secondary ramp spanning the whole
// width, so the head color tracks how far along the song is.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = min(max(percent, 0), 100)
	filled := int(float64(width) * percent / 100)

	t := T()
	ramp := hclRamp(width, t.Primary, t.Secondary)
	var b strings.Builder
	for _, hex := range ramp[:filled] {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(progressFilled))
	}
	b.WriteString(t.S().Subtle.Render(strings.Repeat(progressEmpty, width-filled)))
	return b.String()
}

// NowPlaying renders the label of the playing track in bold, fading from the
// primary to the secondary color one grapheme at a time.
func NowPlaying(label string) string {
	var graphemes []string
	g := uniseg.NewGraphemes(label)
	for g.Next() {
		graphemes = append(graphemes, g.Str())
	}

	t := T()
	switch len(graphemes) {
	case 0:
		return ""
	case 1:
		return t.S().Playing.Render(label)
	}

	ramp := hclRamp(len(graphemes), t.Primary, t.Secondary)
	var b strings.Builder
	for i, cluster := range graphemes {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ramp[i])).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

// hclRamp returns n hex colors evenly spaced between from and to in HCL space.
func hclRamp(n int, from, to lipgloss.Color) []string {
	start, end := parseHex(from), parseHex(to)
	if n < 2 {
		return []string{start.Hex()}
	}
	ramp := make([]string, n)
	for i := range ramp {
		ramp[i] = start.BlendHcl(end, float64(i)/float64(n-1)).Clamped().Hex()
	}
	return ramp
}

func parseHex(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackGray
	}
	return col
}
