// Package tracklist renders the scrollable playlist with a selection cursor
// and a marker on the playing track.
package tracklist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/foldplay/internal/playlist"
	"github.com/llehouerou/foldplay/internal/ui/render"
	"github.com/llehouerou/foldplay/internal/ui/styles"
)

// headerHeight is the folder line plus the separator.
const headerHeight = 2

// scrollMargin keeps this many rows visible above and below the cursor.
const scrollMargin = 2

// Model is the track list state. The zero value is an empty list.
type Model struct {
	folder  string
	tracks  []playlist.Track
	size    uint64
	playing int // -1 when no track is current
	cursor  int
	offset  int
	width   int
	height  int
}

// New creates an empty list.
func New() Model {
	return Model{playing: -1}
}

// SetTracks replaces the list content. The cursor follows the playing
// index when there is one, otherwise it is clamped.
func (m *Model) SetTracks(folder string, tracks []playlist.Track, playing int) {
	m.folder = folder
	m.tracks = tracks
	m.size = playlist.TotalSize(tracks)
	m.playing = playing
	if playing >= 0 {
		m.cursor = playing
	}
	m.clamp()
}

// SetPlaying marks index as the current track and moves the cursor to it.
func (m *Model) SetPlaying(index int) {
	m.playing = index
	if index >= 0 && index < len(m.tracks) {
		m.cursor = index
		m.ensureVisible()
	}
}

// SetSize sets the outer dimensions, header included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// Move moves the cursor by delta rows.
func (m *Model) Move(delta int) {
	m.cursor += delta
	m.clamp()
}

// JumpStart moves the cursor to the first track.
func (m *Model) JumpStart() {
	m.cursor = 0
	m.offset = 0
}

// JumpEnd moves the cursor to the last track.
func (m *Model) JumpEnd() {
	m.cursor = len(m.tracks) - 1
	m.clamp()
}

// JumpToPlaying moves the cursor to the playing track, if any.
func (m *Model) JumpToPlaying() {
	m.SetPlaying(m.playing)
}

// Cursor returns the highlighted index, or -1 for an empty list.
func (m Model) Cursor() int {
	if len(m.tracks) == 0 {
		return -1
	}
	return m.cursor
}

// Offset returns the index of the first visible row.
func (m Model) Offset() int {
	return m.offset
}

// Len returns the number of tracks.
func (m Model) Len() int {
	return len(m.tracks)
}

func (m Model) listHeight() int {
	return max(m.height-headerHeight, 0)
}

func (m *Model) clamp() {
	if len(m.tracks) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.tracks)-1)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	height := m.listHeight()
	if height <= 0 || len(m.tracks) == 0 {
		return
	}
	margin := min(scrollMargin, (height-1)/2)

	if m.cursor < m.offset+margin {
		m.offset = max(m.cursor-margin, 0)
	}
	if m.cursor >= m.offset+height-margin {
		m.offset = m.cursor - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-height, 0))
}

// View renders the header and the visible rows, padded to the full height.
func (m Model) View() string {
	t := styles.T().S()
	width := max(m.width, 10)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.header(width), t.Subtle.Render(render.Separator(width)))

	height := m.listHeight()
	if len(m.tracks) == 0 {
		msg := "No audio files. Press o to open a folder."
		if m.folder == "" {
			msg = "Press o to open a folder."
		}
		lines = append(lines, t.Muted.Render(render.TruncateAndPad(msg, width)))
	}

	end := min(m.offset+height, len(m.tracks))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.row(i, width))
	}

	for len(lines) < m.height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) header(width int) string {
	t := styles.T().S()
	name := "No folder"
	if m.folder != "" {
		name = filepath.Base(m.folder)
	}
	summary := fmt.Sprintf("%d tracks", len(m.tracks))
	if len(m.tracks) == 1 {
		summary = "1 track"
	}
	if m.size > 0 {
		summary += " · " + humanize.Bytes(m.size)
	}
	nameWidth := max(width-lipgloss.Width(summary)-1, 1)
	return render.Row(t.Title.Render(render.Truncate(name, nameWidth)), t.Muted.Render(summary), width)
}

func (m Model) row(i, width int) string {
	t := styles.T().S()

	marker := "  "
	if i == m.playing {
		marker = "▶ "
	}
	num := fmt.Sprintf("%3d ", i+1)
	// marker is two cells wide in both cases
	name := render.TruncateAndPad(m.tracks[i].Name(), max(width-2-len(num), 1))
	text := marker + num + name

	switch {
	case i == m.cursor:
		return t.Cursor.Render(text)
	case i == m.playing:
		return t.Playing.Render(text)
	default:
		return t.Base.Render(text)
	}
}
