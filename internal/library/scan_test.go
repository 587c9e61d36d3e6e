package library

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/foldplay/internal/playlist"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o600))
	}
}

func names(tracks []playlist.Track) []string {
	result := make([]string, len(tracks))
	for i, t := range tracks {
		result[i] = t.Name()
	}
	return result
}

func TestScan_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp3", "b.wav", "c.ogg", "d.flac", "cover.jpg", "notes.txt", "e.m4a")

	tracks, err := Scan(dir, ScanOptions{})
	require.NoError(t, err)

	got := names(tracks)
	slices.Sort(got)
	assert.Equal(t, []string{"a.mp3", "b.wav", "c.ogg", "d.flac"}, got)
}

func TestScan_ExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "LOUD.MP3", "Mixed.Flac")

	tracks, err := Scan(dir, ScanOptions{})
	require.NoError(t, err)

	assert.Len(t, tracks, 2)
}

func TestScan_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album.mp3"), 0o700))
	writeFiles(t, dir, "song.mp3")

	tracks, err := Scan(dir, ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"song.mp3"}, names(tracks))
}

func TestScan_EmptyFolder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "readme.md")

	tracks, err := Scan(dir, ScanOptions{})
	require.NoError(t, err)

	assert.Empty(t, tracks)
}

func TestScan_SortOption(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.mp3", "a.mp3", "b.mp3")

	tracks, err := Scan(dir, ScanOptions{Sort: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, names(tracks))
}

func TestScan_AbsolutePathsAndSizes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp3")

	tracks, err := Scan(dir, ScanOptions{})
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	assert.Equal(t, filepath.Join(dir, "a.mp3"), tracks[0].Path)
	assert.Equal(t, int64(4), tracks[0].Size)
}

func TestScan_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp3", "b.opus")

	tracks, err := Scan(dir, ScanOptions{Extensions: []string{".OPUS"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"b.opus"}, names(tracks))
}

func TestScan_MissingFolder(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), ScanOptions{})

	assert.Error(t, err)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/song.mp3", true},
		{"/music/song.FLAC", true},
		{"/music/song.ogg", true},
		{"/music/song.wav", true},
		{"/music/song.m4a", false},
		{"/music/mp3", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsAudioFile(tt.path, nil); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
