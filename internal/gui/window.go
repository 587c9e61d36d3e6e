// Package gui is the desktop front-end: a fyne window with a folder button,
// the now-playing label, a progress bar, transport buttons, the track list
// and the shuffle and repeat toggles.
package gui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/errmsg"
	"github.com/llehouerou/foldplay/internal/logging"
	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/playlist"
)

// Window size on first show.
const (
	WindowWidth  = 520
	WindowHeight = 560
)

// Options configures the window.
type Options struct {
	// TickInterval is the position poll cadence; zero means one second.
	TickInterval time.Duration
	Logger       logrus.FieldLogger
}

// Window binds a playback controller to a fyne window.
type Window struct {
	ctrl     *playback.Controller
	win      fyne.Window
	logger   logrus.FieldLogger
	interval time.Duration

	folderButton *widget.Button
	trackLabel   *widget.Label
	progress     *widget.ProgressBar
	elapsedLabel *widget.Label
	totalLabel   *widget.Label
	playButton   *widget.Button
	pauseButton  *widget.Button
	prevButton   *widget.Button
	nextButton   *widget.Button
	list         *widget.List
	shuffleCheck *widget.Check
	repeatCheck  *widget.Check
	statusLabel  *widget.Label

	// Touched on the fyne goroutine only.
	tracks  []playlist.Track
	syncing bool
}

// New builds the window. Nothing runs until Run.
func New(a fyne.App, ctrl *playback.Controller, opts Options) *Window {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	w := &Window{
		ctrl:     ctrl,
		win:      a.NewWindow("foldplay"),
		logger:   logger,
		interval: interval,
	}
	w.build()
	w.win.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	return w
}

func (w *Window) build() {
	w.folderButton = widget.NewButtonWithIcon("Select folder", theme.FolderOpenIcon(), w.chooseFolder)
	w.trackLabel = widget.NewLabel("No track")
	w.trackLabel.Truncation = fyne.TextTruncateEllipsis
	w.progress = widget.NewProgressBar()
	w.progress.Max = 100
	w.progress.TextFormatter = func() string { return "" }
	w.elapsedLabel = widget.NewLabel(playback.FormatClock(0))
	w.totalLabel = widget.NewLabel(playback.FormatClock(0))

	w.prevButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() {
		w.report(errmsg.OpPlaybackStart, w.ctrl.Previous())
	})
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		w.report(errmsg.OpPlaybackStart, w.ctrl.Play())
	})
	w.pauseButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() {
		w.report(errmsg.OpPlaybackStart, w.ctrl.Pause())
	})
	w.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() {
		w.report(errmsg.OpPlaybackStart, w.ctrl.Next())
	})

	w.list = widget.NewList(
		func() int { return len(w.tracks) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if label, ok := obj.(*widget.Label); ok && id < len(w.tracks) {
				label.SetText(w.tracks[id].Name())
			}
		},
	)
	w.list.OnSelected = w.onSelected

	w.shuffleCheck = widget.NewCheck("Shuffle", func(on bool) {
		if on != w.ctrl.Shuffle() {
			w.ctrl.SetShuffle(on)
		}
	})
	w.shuffleCheck.SetChecked(w.ctrl.Shuffle())
	w.repeatCheck = widget.NewCheck("Repeat", func(on bool) {
		if on != w.ctrl.Repeat() {
			w.ctrl.SetRepeat(on)
		}
	})
	w.repeatCheck.SetChecked(w.ctrl.Repeat())

	w.statusLabel = widget.NewLabel("")
	w.statusLabel.Truncation = fyne.TextTruncateEllipsis

	timeRow := container.NewBorder(nil, nil, w.elapsedLabel, w.totalLabel, w.progress)
	controls := container.NewHBox(w.prevButton, w.playButton, w.pauseButton, w.nextButton)
	modes := container.NewHBox(w.shuffleCheck, w.repeatCheck)

	top := container.NewVBox(w.folderButton, w.trackLabel, timeRow, container.NewCenter(controls))
	bottom := container.NewVBox(modes, w.statusLabel)
	w.win.SetContent(container.NewBorder(top, bottom, nil, nil, w.list))
}

// Run shows the window and blocks until it is closed. A non-empty folder is
// loaded right away.
func (w *Window) Run(ctx context.Context, folder string) {
	ctx, cancel := context.WithCancel(ctx)
	w.win.SetOnClosed(cancel)
	w.start(ctx, folder)
	w.win.ShowAndRun()
	cancel()
}

// start launches the poll loop and the event listener.
func (w *Window) start(ctx context.Context, folder string) {
	go w.listen(ctx, w.ctrl.Subscribe())
	go w.poll(ctx)
	if folder != "" {
		go w.load(folder)
	}
}

// poll ticks the controller until ctx is done.
func (w *Window) poll(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ctrl.Tick(); err != nil {
				w.logger.WithError(err).Debug("Tick failed")
			}
			st := w.ctrl.Status()
			fyne.Do(func() { w.applyStatus(st) })
		}
	}
}

// listen mirrors controller events into the widgets.
func (w *Window) listen(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.QueueChanged:
			fyne.Do(func() { w.applyQueue(e) })
		case e := <-sub.TrackChanged:
			st := w.ctrl.Status()
			fyne.Do(func() {
				w.applyTrack(e)
				w.applyStatus(st)
			})
		case <-sub.StateChanged:
			st := w.ctrl.Status()
			fyne.Do(func() { w.applyStatus(st) })
		case e := <-sub.ModeChanged:
			fyne.Do(func() { w.applyModes(e) })
		case e := <-sub.Error:
			fyne.Do(func() { w.applyError(e) })
		}
	}
}

func (w *Window) chooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if uri == nil {
			return
		}
		go w.load(uri.Path())
	}, w.win)
}

// load scans and starts dir. Results arrive through the subscription.
func (w *Window) load(dir string) {
	if err := w.ctrl.LoadFolder(dir); err != nil {
		w.logger.WithError(err).WithField("folder", dir).Debug("Folder load failed")
	}
}

func (w *Window) onSelected(id widget.ListItemID) {
	if w.syncing {
		return
	}
	w.report(errmsg.OpTrackSelect, w.ctrl.SelectTrack(id))
}

func (w *Window) report(op errmsg.Op, err error) {
	if err != nil {
		w.statusLabel.SetText(errmsg.Format(op, err))
	}
}
