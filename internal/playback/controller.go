// Package playback owns the playlist, the current index and the transport
// state, and drives an audio backend from user intents.
package playback

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/library"
	"github.com/llehouerou/foldplay/internal/logging"
	"github.com/llehouerou/foldplay/internal/player"
	"github.com/llehouerou/foldplay/internal/playlist"
	"github.com/llehouerou/foldplay/internal/tags"
)

// ErrIndexOutOfRange is returned by SelectTrack for an index outside the playlist.
var ErrIndexOutOfRange = errors.New("track index out of range")

// Options configures a Controller.
type Options struct {
	Shuffle bool
	Repeat  bool
	Scan    library.ScanOptions
	// Rand picks shuffle indices. Nil uses the global source.
	Rand   *rand.Rand
	Logger logrus.FieldLogger
}

// Controller is the player state machine. All methods are safe for
// concurrent use.
type Controller struct {
	mu sync.Mutex

	backend player.Backend
	reader  tags.Reader
	list    *playlist.Playlist
	scan    library.ScanOptions
	rng     *rand.Rand
	logger  logrus.FieldLogger

	folder  string
	index   int
	playing bool
	paused  bool
	shuffle bool
	repeat  bool

	current *Track
	elapsed time.Duration
	// started is the playlist index of current, -1 when there is none or
	// when a rescan removed it from the playlist.
	started int

	subs       []*Subscription
	subsMu     sync.RWMutex
	subsClosed bool

	closed bool
}

// New creates a stopped controller with an empty playlist.
func New(backend player.Backend, reader tags.Reader, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		backend: backend,
		reader:  reader,
		list:    playlist.New(),
		scan:    opts.Scan,
		rng:     opts.Rand,
		logger:  logger,
		shuffle: opts.Shuffle,
		repeat:  opts.Repeat,
		started: -1,
	}
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.subsClosed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops the backend and ends all subscriptions.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.backend.Stop()
	c.playing, c.paused = false, false
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsClosed = true
	c.subsMu.Unlock()

	return nil
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) each(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

func (c *Controller) emitState(prev, cur State) {
	if prev == cur {
		return
	}
	c.each(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: cur}) })
}

func (c *Controller) emitTrack(e TrackChange) {
	c.each(func(s *Subscription) { s.sendTrack(e) })
}

func (c *Controller) emitQueue(e QueueChange) {
	c.each(func(s *Subscription) { s.sendQueue(e) })
}

func (c *Controller) emitMode() {
	e := ModeChange{Shuffle: c.shuffle, Repeat: c.repeat}
	c.each(func(s *Subscription) { s.sendMode(e) })
}

func (c *Controller) emitError(op, path string, err error) {
	c.each(func(s *Subscription) { s.sendError(ErrorEvent{Operation: op, Path: path, Err: err}) })
}

func (c *Controller) intn(n int) int {
	if c.rng != nil {
		return c.rng.IntN(n)
	}
	return rand.IntN(n)
}
