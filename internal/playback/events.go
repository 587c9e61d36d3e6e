package playback

import (
	"path/filepath"

	"github.com/llehouerou/foldplay/internal/errmsg"
	"github.com/llehouerou/foldplay/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted every time a track is started, including a
// restart of the same track by repeat or by an explicit Play.
//
// Emitted by Play, Next, Previous, SelectTrack and by Tick when the
// finished track is replayed or advanced. Not emitted by Pause.
type TrackChange struct {
	Previous *Track
	Current  *Track
	// PreviousIndex is where Previous sat in the playlist, -1 when it is
	// gone or there was none.
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the playlist is replaced.
type QueueChange struct {
	Folder string
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle changes.
type ModeChange struct {
	Shuffle bool
	Repeat  bool
}

// ErrorEvent is emitted when an operation fails.
type ErrorEvent struct {
	Operation string // e.g., "play", "load folder"
	Path      string // track or folder path if applicable
	Err       error
}

// Message formats the event for a status line.
func (e ErrorEvent) Message() string {
	op := errmsg.OpPlaybackStart
	switch e.Operation {
	case "load folder":
		op = errmsg.OpFolderLoad
	case "rescan folder":
		op = errmsg.OpFolderRescan
	}
	context := ""
	if e.Path != "" {
		context = filepath.Base(e.Path)
	}
	return errmsg.FormatWith(op, context, e.Err)
}
