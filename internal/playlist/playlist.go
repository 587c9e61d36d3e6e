// Package playlist holds the ordered track list built from a folder.
package playlist

import (
	"path/filepath"
	"strings"
)

// Track is a single audio file of the playlist.
type Track struct {
	Path string // absolute file path, used for playback
	Size int64  // file size in bytes (0 if unknown)
}

// Name returns the file name without its directory.
func (t Track) Name() string {
	return filepath.Base(t.Path)
}

// Stem returns the file name without directory and extension.
func (t Track) Stem() string {
	name := t.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Playlist holds an ordered collection of tracks.
// Order is insertion order; duplicates are kept.
type Playlist struct {
	tracks []Track
}

// New creates a new empty playlist.
func New() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Replace swaps the whole content of the playlist.
func (p *Playlist) Replace(tracks ...Track) {
	p.tracks = append(p.tracks[:0], tracks...)
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}

// IndexOf returns the index of the first track with the given path, or -1.
func (p *Playlist) IndexOf(path string) int {
	for i, t := range p.tracks {
		if t.Path == path {
			return i
		}
	}
	return -1
}

// TotalSize returns the sum of the known track sizes.
func TotalSize(tracks []Track) uint64 {
	var total uint64
	for _, t := range tracks {
		if t.Size > 0 {
			total += uint64(t.Size)
		}
	}
	return total
}
