package app

import (
	"time"

	"github.com/llehouerou/foldplay/internal/playback"
)

// TickMsg is sent periodically to poll the controller.
type TickMsg time.Time

// FolderLoadedMsg reports the end of a folder load.
type FolderLoadedMsg struct {
	Dir string
	Err error
}

// FolderChangedMsg is sent when the watched folder's audio files change.
type FolderChangedMsg struct {
	watcher FolderWatcher
}

// StderrMsg carries a line written to stderr by a C library.
type StderrMsg struct {
	Line string
}

// Service event messages, forwarded from the controller's subscription.
type (
	ServiceStateChangedMsg playback.StateChange
	ServiceTrackChangedMsg playback.TrackChange
	ServiceQueueChangedMsg playback.QueueChange
	ServiceModeChangedMsg  playback.ModeChange
	ServiceErrorMsg        playback.ErrorEvent
	ServiceClosedMsg       struct{}
)
