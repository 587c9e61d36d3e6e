package gui

import (
	"path/filepath"

	"github.com/llehouerou/foldplay/internal/playback"
)

// The apply methods run on the fyne goroutine.

func (w *Window) applyStatus(st playback.Status) {
	label := st.Track.Label()
	if label == "" {
		label = "No track"
	}
	if st.State == playback.StatePaused {
		label += " (paused)"
	}
	w.trackLabel.SetText(label)
	w.elapsedLabel.SetText(st.ElapsedLabel())
	w.totalLabel.SetText(st.TotalLabel())
	w.progress.SetValue(st.Progress())
}

func (w *Window) applyQueue(e playback.QueueChange) {
	w.tracks = e.Tracks
	if e.Folder != "" {
		w.folderButton.SetText(filepath.Base(e.Folder))
	}
	w.list.Refresh()
	w.selectRow(e.Index)
	if len(e.Tracks) == 0 {
		w.statusLabel.SetText("No audio files in " + e.Folder)
	}
}

func (w *Window) applyTrack(e playback.TrackChange) {
	w.selectRow(e.Index)
	w.statusLabel.SetText("")
}

func (w *Window) applyModes(e playback.ModeChange) {
	w.shuffleCheck.SetChecked(e.Shuffle)
	w.repeatCheck.SetChecked(e.Repeat)
}

func (w *Window) applyError(e playback.ErrorEvent) {
	w.statusLabel.SetText(e.Message())
}

// selectRow highlights index without triggering SelectTrack.
func (w *Window) selectRow(index int) {
	w.syncing = true
	defer func() { w.syncing = false }()
	if index < 0 || index >= len(w.tracks) {
		w.list.UnselectAll()
		return
	}
	w.list.Select(index)
	w.list.ScrollTo(index)
}
