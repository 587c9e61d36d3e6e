// Package app implements the terminal front-end: a bubbletea model that
// drives a playback.Controller and renders the folder's track list.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/keymap"
	"github.com/llehouerou/foldplay/internal/logging"
	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/ui/folderpicker"
	"github.com/llehouerou/foldplay/internal/ui/playerbar"
	"github.com/llehouerou/foldplay/internal/ui/tracklist"
)

// FolderWatcher reports changes to the loaded folder.
type FolderWatcher interface {
	Changes() <-chan struct{}
	Close() error
}

// WatchFunc starts watching a folder.
type WatchFunc func(dir string) (FolderWatcher, error)

// Options configures the model.
type Options struct {
	// StartFolder is loaded on startup. Empty opens the folder picker.
	StartFolder string
	// TickInterval is the position poll cadence; zero means one second.
	TickInterval time.Duration
	// Watch, when set, is called after each successful folder load.
	Watch  WatchFunc
	Logger logrus.FieldLogger
}

// Model is the root bubbletea model.
type Model struct {
	ctrl   *playback.Controller
	sub    *playback.Subscription
	keys   *keymap.Resolver
	logger logrus.FieldLogger

	tracks tracklist.Model
	picker folderpicker.Model
	help   help.Model

	picking  bool
	showHelp bool

	startFolder string
	interval    time.Duration
	watch       WatchFunc
	watcher     FolderWatcher

	errorMsg string
	width    int
	height   int
}

// New creates the root model. The caller keeps ownership of ctrl and
// closes it after the program exits.
func New(ctrl *playback.Controller, opts Options) Model {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		ctrl:        ctrl,
		sub:         ctrl.Subscribe(),
		keys:        keymap.Default(),
		logger:      logger,
		tracks:      tracklist.New(),
		picker:      folderpicker.New(opts.StartFolder),
		help:        help.New(),
		picking:     opts.StartFolder == "",
		startFolder: opts.StartFolder,
		interval:    interval,
		watch:       opts.Watch,
	}
}

// Init starts the poll loop, the event listeners and the first folder load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(m.interval),
		WatchServiceEvents(m.sub),
		WatchStderr(),
	}
	if m.picking {
		cmds = append(cmds, m.picker.Init())
	} else {
		cmds = append(cmds, LoadFolderCmd(m.ctrl, m.startFolder))
	}
	return tea.Batch(cmds...)
}

// Close releases the folder watcher. The controller is closed by its owner.
func (m Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

// Picking reports whether the folder picker is shown.
func (m Model) Picking() bool {
	return m.picking
}

// ErrorMessage returns the error shown in the status line, if any.
func (m Model) ErrorMessage() string {
	return m.errorMsg
}

func (m *Model) resize() {
	m.tracks.SetSize(m.width, max(m.height-playerbar.Height-1, 1))
	m.picker.SetSize(m.width, m.height)
	m.help.Width = m.width
}
