package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/stderr"
)

// TickCmd returns a command that sends TickMsg after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// LoadFolderCmd loads dir into the controller off the UI goroutine.
// Scanning and starting the first track both touch the disk.
func LoadFolderCmd(ctrl *playback.Controller, dir string) tea.Cmd {
	return func() tea.Msg {
		return FolderLoadedMsg{Dir: dir, Err: ctrl.LoadFolder(dir)}
	}
}

// WatchServiceEvents returns a command that waits for the next controller event.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchFolderChanges waits for the next change reported by w.
func WatchFolderChanges(w FolderWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return waitForChannel(w.Changes(), func(_ struct{}, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return FolderChangedMsg{watcher: w}
	})
}

// WatchStderr returns a command that waits for stderr output from C libraries.
func WatchStderr() tea.Cmd {
	return waitForChannel[string](stderr.Messages, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}
