package playback

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/foldplay/internal/tags"
)

// Track describes the track at the current index.
// This is a copy of the data, not a reference to playlist.Track.
type Track struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Label is the now-playing text: "Artist - Title" when the file is tagged,
// the file name otherwise.
func (t *Track) Label() string {
	if t == nil {
		return ""
	}
	base := filepath.Base(t.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if t.Artist == "" && (t.Title == "" || t.Title == stem) {
		return base
	}
	info := tags.FileInfo{Title: t.Title, Artist: t.Artist}
	return info.DisplayTitle()
}

func newTrack(path string, info *tags.FileInfo, d time.Duration) *Track {
	t := &Track{Path: path, Duration: d}
	if info != nil {
		t.Title = info.Title
		t.Artist = info.Artist
		t.Album = info.Album
	}
	return t
}
