// Package playerbar renders the now-playing panel: track label, transport
// status, elapsed/total time with a progress bar and the mode toggles.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/ui/render"
	"github.com/llehouerou/foldplay/internal/ui/styles"
)

// Height is the rendered height: two content rows plus the border.
const Height = 4

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Label    string
	Elapsed  string // MM:SS
	Total    string // MM:SS
	Progress float64
	Shuffle  bool
	Repeat   bool
	Index    int // -1 when nothing is selected
	Count    int
}

// NewState builds a State from a controller snapshot.
func NewState(st playback.Status, count int) State {
	return State{
		Status:   st.State,
		Label:    st.Track.Label(),
		Elapsed:  st.ElapsedLabel(),
		Total:    st.TotalLabel(),
		Progress: st.Progress(),
		Shuffle:  st.Shuffle,
		Repeat:   st.Repeat,
		Index:    st.Index,
		Count:    count,
	}
}

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 10) // border + padding

	status := stopSymbol
	switch s.Status {
	case playback.StatePlaying:
		status = playSymbol
	case playback.StatePaused:
		status = pauseSymbol
	case playback.StateStopped:
	}

	label := s.Label
	if label == "" {
		label = "No track"
	}

	position := ""
	if s.Index >= 0 && s.Count > 0 {
		position = fmt.Sprintf("%d/%d", s.Index+1, s.Count)
	}

	t := styles.T().S()
	labelWidth := innerWidth - lipgloss.Width(status) - 1 - lipgloss.Width(position) - 1
	label = render.Truncate(label, max(labelWidth, 1))
	if s.Status == playback.StatePlaying {
		label = styles.NowPlaying(label)
	} else {
		label = t.Title.Render(label)
	}
	top := render.Row(
		t.Playing.Render(status)+" "+label,
		t.Muted.Render(position),
		innerWidth,
	)

	toggles := toggle("shuffle", s.Shuffle) + " " + toggle("repeat", s.Repeat)
	elapsed, total := s.Elapsed, s.Total
	if elapsed == "" {
		elapsed = "00:00"
	}
	if total == "" {
		total = "00:00"
	}
	fixed := lipgloss.Width(elapsed) + lipgloss.Width(total) + lipgloss.Width(toggles) + 4
	bar := styles.ProgressBar(s.Progress, max(innerWidth-fixed, 5))

	var bottom strings.Builder
	bottom.WriteString(t.Muted.Render(elapsed))
	bottom.WriteString(" ")
	bottom.WriteString(bar)
	bottom.WriteString(" ")
	bottom.WriteString(t.Muted.Render(total))
	bottom.WriteString("  ")
	bottom.WriteString(toggles)

	return t.Panel.Padding(0, 2).Width(width - 2).Render(top + "\n" + bottom.String())
}

func toggle(name string, on bool) string {
	t := styles.T().S()
	if on {
		return t.Active.Render(name)
	}
	return t.Subtle.Render(name)
}
