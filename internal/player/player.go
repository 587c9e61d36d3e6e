// Package player plays audio files through the system speaker.
package player

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/sirupsen/logrus"
)

// File extensions the player can decode.
const (
	extMP3  = ".mp3"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extFLAC = ".flac"
)

// speakerBufferDuration is the speaker buffer length. Larger values
// cost latency on pause, smaller ones risk underruns.
const speakerBufferDuration = time.Second / 10

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is a Backend built on the beep speaker.
type Player struct {
	mu sync.Mutex

	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File
	path     string
	started  bool

	// generation identifies the current track so that a completion
	// callback from a track that was already stopped is ignored.
	generation atomic.Uint64
	finished   atomic.Bool

	logger logrus.FieldLogger
}

// New creates a Player. The speaker is initialized lazily on first Load.
func New(logger logrus.FieldLogger) *Player {
	return &Player{logger: logger}
}

// CanPlay reports whether the file extension has a decoder.
func CanPlay(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extWAV, extOGG, extFLAC:
		return true
	}
	return false
}

// Path returns the loaded track path, or "" if nothing is loaded.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}
