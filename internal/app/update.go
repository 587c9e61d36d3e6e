package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/foldplay/internal/errmsg"
	"github.com/llehouerou/foldplay/internal/keymap"
	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/ui/folderpicker"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if err := m.ctrl.Tick(); err != nil {
			m.setError(errmsg.OpPlaybackStart, err)
		}
		return m, TickCmd(m.interval)

	case FolderLoadedMsg:
		return m.handleFolderLoaded(msg)

	case FolderChangedMsg:
		if msg.watcher != m.watcher {
			// stale watcher from a previous folder
			return m, nil
		}
		if err := m.ctrl.Rescan(); err != nil {
			m.setError(errmsg.OpFolderRescan, err)
		}
		return m, WatchFolderChanges(m.watcher)

	case folderpicker.SelectedMsg:
		m.picking = false
		m.errorMsg = ""
		return m, LoadFolderCmd(m.ctrl, msg.Path)

	case folderpicker.CanceledMsg:
		if m.ctrl.Folder() == "" {
			// nothing to go back to
			return m, tea.Quit
		}
		m.picking = false
		return m, nil

	case StderrMsg:
		m.errorMsg = msg.Line
		return m, WatchStderr()

	case ServiceClosedMsg:
		return m, nil
	}

	if cmd, ok := m.handleServiceEvent(msg); ok {
		return m, cmd
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleServiceEvent applies controller events. ok is false for other messages.
func (m *Model) handleServiceEvent(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case ServiceQueueChangedMsg:
		m.tracks.SetTracks(msg.Folder, msg.Tracks, msg.Index)
	case ServiceTrackChangedMsg:
		m.tracks.SetPlaying(msg.Index)
		m.errorMsg = ""
	case ServiceStateChangedMsg, ServiceModeChangedMsg:
		// rendered from the controller status
	case ServiceErrorMsg:
		m.errorMsg = playback.ErrorEvent(msg).Message()
	default:
		return nil, false
	}
	return WatchServiceEvents(m.sub), true
}

func (m Model) handleFolderLoaded(msg FolderLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError(errmsg.OpFolderLoad, msg.Err)
		return m, nil
	}
	if m.ctrl.Len() == 0 {
		m.errorMsg = "No audio files in " + msg.Dir
	}
	if m.watch == nil {
		return m, nil
	}

	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
	w, err := m.watch(msg.Dir)
	if err != nil {
		m.logger.WithError(err).WithField("folder", msg.Dir).Warn("Folder watch unavailable")
		m.setError(errmsg.OpFolderWatch, err)
		return m, nil
	}
	m.watcher = w
	return m, WatchFolderChanges(w)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
	case keymap.ActionOpenFolder:
		start := m.ctrl.Folder()
		if start == "" {
			start = m.startFolder
		}
		m.picker = folderpicker.New(start)
		m.picker.SetSize(m.width, m.height)
		m.picking = true
		return m, m.picker.Init()

	case keymap.ActionPlayPause:
		if m.ctrl.State() == playback.StateStopped {
			m.check(errmsg.OpPlaybackStart, m.ctrl.Play())
		} else {
			m.check(errmsg.OpPlaybackStart, m.ctrl.Pause())
		}
	case keymap.ActionPlay:
		m.check(errmsg.OpPlaybackStart, m.ctrl.Play())
	case keymap.ActionNextTrack:
		m.check(errmsg.OpPlaybackStart, m.ctrl.Next())
	case keymap.ActionPrevTrack:
		m.check(errmsg.OpPlaybackStart, m.ctrl.Previous())
	case keymap.ActionSelect:
		if i := m.tracks.Cursor(); i >= 0 {
			m.check(errmsg.OpTrackSelect, m.ctrl.SelectTrack(i))
		}
	case keymap.ActionToggleShuffle:
		m.ctrl.ToggleShuffle()
	case keymap.ActionToggleRepeat:
		m.ctrl.ToggleRepeat()

	case keymap.ActionMoveDown:
		m.tracks.Move(1)
	case keymap.ActionMoveUp:
		m.tracks.Move(-1)
	case keymap.ActionJumpStart:
		m.tracks.JumpStart()
	case keymap.ActionJumpEnd:
		m.tracks.JumpEnd()
	case keymap.ActionJumpToNow:
		m.tracks.JumpToPlaying()
	}
	return m, nil
}

func (m *Model) check(op errmsg.Op, err error) {
	if err != nil {
		m.setError(op, err)
	}
}

func (m *Model) setError(op errmsg.Op, err error) {
	m.errorMsg = errmsg.Format(op, err)
}

