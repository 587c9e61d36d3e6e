// Package library enumerates and watches the folder a playlist is built from.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/foldplay/internal/playlist"
)

// DefaultExtensions are the audio file extensions picked up by Scan.
var DefaultExtensions = []string{"mp3", "wav", "ogg", "flac"}

// ScanOptions controls which files end up in the playlist and in which order.
type ScanOptions struct {
	Extensions []string // without leading dot, case-insensitive; empty means DefaultExtensions
	Sort       bool     // sort by file name instead of directory-listing order
}

// Scan lists dir (non-recursive) and returns the audio files it contains.
//
// Files are returned in directory-listing order, which depends on the
// platform and filesystem, unless opts.Sort is set.
func Scan(dir string, opts ScanOptions) ([]playlist.Track, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open folder: %w", err)
	}
	defer f.Close()

	// (*os.File).ReadDir keeps the order the filesystem returns, os.ReadDir sorts.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	exts := normalizeExtensions(opts.Extensions)
	audio := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && hasExtension(e.Name(), exts)
	})
	if opts.Sort {
		slices.SortFunc(audio, func(a, b os.DirEntry) int {
			return strings.Compare(a.Name(), b.Name())
		})
	}

	return lo.Map(audio, func(e os.DirEntry, _ int) playlist.Track {
		t := playlist.Track{Path: filepath.Join(dir, e.Name())}
		if info, err := e.Info(); err == nil {
			t.Size = info.Size()
		}
		return t
	}), nil
}

// IsAudioFile reports whether path has one of the given extensions.
func IsAudioFile(path string, extensions []string) bool {
	return hasExtension(path, normalizeExtensions(extensions))
}

func hasExtension(name string, exts []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return ext != "" && slices.Contains(exts, ext)
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return lo.Uniq(lo.Map(exts, func(e string, _ int) string {
		return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
	}))
}
