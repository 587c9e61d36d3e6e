// Package tags reads track labels and durations from audio files.
package tags

import (
	"path/filepath"
	"strings"
	"time"
)

// File extensions handled by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// FileInfo holds the labels shown for a track.
type FileInfo struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Year   int
	Track  int
}

// DisplayTitle returns "Artist - Title", or just the title when the artist is unknown.
func (fi *FileInfo) DisplayTitle() string {
	if fi == nil {
		return ""
	}
	if fi.Artist != "" {
		return fi.Artist + " - " + fi.Title
	}
	return fi.Title
}

// Reader is the metadata contract used by the playback controller.
type Reader interface {
	// Read returns tag labels. Files without tags yield a FileInfo titled
	// after the file name, not an error.
	Read(path string) (*FileInfo, error)
	// Duration returns the total play time of the file.
	Duration(path string) (time.Duration, error)
}

// FileReader reads metadata straight from the files on disk.
type FileReader struct{}

// NewReader creates a FileReader.
func NewReader() *FileReader {
	return &FileReader{}
}

// Verify FileReader implements Reader at compile time.
var _ Reader = (*FileReader)(nil)

// Read implements Reader.
func (r *FileReader) Read(path string) (*FileInfo, error) {
	return Read(path)
}

// Duration implements Reader.
func (r *FileReader) Duration(path string) (time.Duration, error) {
	return Duration(path)
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
