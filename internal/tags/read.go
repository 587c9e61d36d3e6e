package tags

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag labels from an audio file.
// Files with no readable tags fall back to the file name as title.
func Read(path string) (*FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if info := readFallback(path); info != nil {
			return info, nil
		}
		return &FileInfo{Path: path, Title: fileStem(path)}, nil
	}

	track, _ := m.Track()
	info := &FileInfo{
		Path:   path,
		Title:  sanitize(m.Title()),
		Artist: sanitize(m.Artist()),
		Album:  sanitize(m.Album()),
		Year:   m.Year(),
		Track:  track,
	}
	if info.Title == "" {
		info.Title = fileStem(path)
	}
	return info, nil
}

// readFallback retries with format specific readers when dhowden/tag fails.
// Returns nil when nothing could be read.
func readFallback(path string) *FileInfo {
	var info *FileInfo
	var err error
	if ext(path) == ExtMP3 {
		// dhowden/tag has issues with some UTF-16 encoded ID3 tags
		info, err = readMP3WithID3v2(path)
	} else {
		info, err = readWithTaglib(path)
	}
	if err != nil || info == nil {
		return nil
	}
	if info.Title == "" {
		info.Title = fileStem(path)
	}
	return info
}

func readMP3WithID3v2(path string) (*FileInfo, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer t.Close()

	if !t.HasFrames() {
		return nil, errors.New("id3v2: no frames")
	}

	track, _ := parseTrackNumber(t.GetTextFrame("TRCK").Text)
	year, _ := strconv.Atoi(firstN(t.Year(), 4))

	return &FileInfo{
		Path:   path,
		Title:  sanitize(t.Title()),
		Artist: sanitize(t.Artist()),
		Album:  sanitize(t.Album()),
		Year:   year,
		Track:  track,
	}, nil
}

func readWithTaglib(path string) (*FileInfo, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	get := func(key string) string {
		if v := raw[key]; len(v) > 0 {
			return sanitize(v[0])
		}
		return ""
	}

	track, _ := parseTrackNumber(get(taglib.TrackNumber))
	year, _ := strconv.Atoi(firstN(get(taglib.Date), 4))

	return &FileInfo{
		Path:   path,
		Title:  get(taglib.Title),
		Artist: get(taglib.Artist),
		Album:  get(taglib.Album),
		Year:   year,
		Track:  track,
	}, nil
}

// parseTrackNumber parses "N" or "N/Total".
func parseTrackNumber(s string) (n, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	num, tot, found := strings.Cut(s, "/")
	n, _ = strconv.Atoi(strings.TrimSpace(num))
	if found {
		total, _ = strconv.Atoi(strings.TrimSpace(tot))
	}
	return n, total
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
