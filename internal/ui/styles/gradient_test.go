package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{-10, 0, 33.3, 50, 100, 250} {
		bar := ProgressBar(pct, 20)
		assert.Equal(t, 20, lipgloss.Width(bar), "percent %v", pct)
	}
	assert.Empty(t, ProgressBar(50, 0))
}

func TestProgressBar_Fill(t *testing.T) {
	plain := ansi.Strip(ProgressBar(50, 10))
	assert.Equal(t, "━━━━━─────", plain)

	assert.Equal(t, "──────────", ansi.Strip(ProgressBar(0, 10)))
	assert.Equal(t, "━━━━━━━━━━", ansi.Strip(ProgressBar(100, 10)))
}

func TestNowPlaying_KeepsText(t *testing.T) {
	assert.Equal(t, "Intro - Band", ansi.Strip(NowPlaying("Intro - Band")))
	assert.Equal(t, "é", ansi.Strip(NowPlaying("é")))
	assert.Empty(t, NowPlaying(""))
}

func TestHCLRamp(t *testing.T) {
	ramp := hclRamp(3, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	assert.Len(t, ramp, 3)
	assert.Equal(t, "#000000", ramp[0])
	assert.Equal(t, "#ffffff", ramp[2])
	assert.Len(t, hclRamp(1, lipgloss.Color("#000000"), lipgloss.Color("#ffffff")), 1)
	assert.Equal(t, []string{"#808080"}, hclRamp(1, lipgloss.Color("12"), lipgloss.Color("13")))
}
