package library

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for the folder to settle
// before reporting a change.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports when audio files appear in or disappear from a folder.
// Bursts of filesystem events are coalesced into a single notification.
type Watcher struct {
	fs       *fsnotify.Watcher
	dir      string
	exts     []string
	debounce time.Duration
	logger   logrus.FieldLogger

	changes chan struct{}
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// Watch starts watching dir for audio file changes.
func Watch(dir string, extensions []string, logger logrus.FieldLogger) (*Watcher, error) {
	return watch(dir, extensions, DefaultDebounce, logger)
}

func watch(dir string, extensions []string, debounce time.Duration, logger logrus.FieldLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		dir:      dir,
		exts:     normalizeExtensions(extensions),
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()

	logger.WithField("dir", dir).Info("Folder watcher started")
	return w, nil
}

// Dir returns the watched folder.
func (w *Watcher) Dir() string { return w.dir }

// Changes receives one value per settled burst of relevant events.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// a change is already pending
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Error("Folder watcher error")
		}
	}
}

// relevant filters out hidden/temp files and events that do not change
// the folder's audio file set.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return false
	}
	if !hasExtension(name, w.exts) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
