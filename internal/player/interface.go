// internal/player/interface.go
package player

import "time"

// Backend is the audio engine contract driven by the playback controller.
// A Backend holds at most one loaded track.
type Backend interface {
	// Load stops any current track and prepares path for playback.
	Load(path string) error
	// Play starts the loaded track from the beginning.
	Play()
	Pause()
	Resume()
	// Stop halts playback and releases the loaded track.
	Stop()
	// IsBusy reports whether a started track has not reached its end yet.
	// A paused track is busy.
	IsBusy() bool
	// Elapsed returns the playback position of the loaded track.
	Elapsed() time.Duration
}

// Verify Player implements Backend at compile time.
var _ Backend = (*Player)(nil)
