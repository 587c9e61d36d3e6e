package playback

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Play (re)starts the track at the current index from the beginning.
// No-op on an empty playlist. A load failure leaves the controller
// stopped with the index unchanged.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.playLocked()
}

func (c *Controller) playLocked() error {
	track := c.list.Track(c.index)
	if track == nil {
		return nil
	}

	prevState := stateOf(c.playing, c.paused)
	prevTrack, prevIndex := c.current, c.started

	c.backend.Stop()
	if err := c.backend.Load(track.Path); err != nil {
		c.playing, c.paused = false, false
		c.current = nil
		c.started = -1
		c.elapsed = 0
		c.logger.WithError(err).WithField("path", track.Path).Error("Playback start failed")
		c.emitState(prevState, StateStopped)
		c.emitError("play", track.Path, err)
		return fmt.Errorf("play %s: %w", track.Name(), err)
	}
	c.backend.Play()
	c.playing, c.paused = true, false
	c.elapsed = 0

	// Missing metadata is not fatal: the total shows as 00:00.
	total, err := c.reader.Duration(track.Path)
	if err != nil {
		c.logger.WithError(err).WithField("path", track.Path).Warn("Track duration unavailable")
		total = 0
	}
	info, err := c.reader.Read(track.Path)
	if err != nil {
		c.logger.WithError(err).WithField("path", track.Path).Debug("Track tags unavailable")
		info = nil
	}
	c.current = newTrack(track.Path, info, total)
	c.started = c.index

	c.logger.WithFields(logrus.Fields{
		"index":    c.index,
		"path":     track.Path,
		"duration": total.String(),
	}).Info("Track started")

	c.emitState(prevState, StatePlaying)
	c.emitTrack(TrackChange{
		Previous:      prevTrack,
		Current:       c.current,
		PreviousIndex: prevIndex,
		Index:         c.index,
	})
	return nil
}

// Pause toggles between paused and playing. No-op unless a track is playing.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.playing {
		return nil
	}
	prev := stateOf(c.playing, c.paused)
	if c.paused {
		c.backend.Resume()
	} else {
		c.backend.Pause()
	}
	c.paused = !c.paused
	c.emitState(prev, stateOf(c.playing, c.paused))
	return nil
}

// Next advances to a random track when shuffle is on, otherwise to the
// following track with wraparound, and plays it.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.nextLocked()
}

func (c *Controller) nextLocked() error {
	n := c.list.Len()
	if n == 0 {
		return nil
	}
	switch {
	case c.shuffle:
		// May pick the current track again.
		c.index = c.intn(n)
	case c.current != nil && c.started < 0:
		// The playing track was removed; index already points at its successor.
	default:
		c.index = (c.index + 1) % n
	}
	return c.playLocked()
}

// Previous steps back one track with wraparound and plays it.
// Shuffle is ignored.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.list.Len()
	if c.closed || n == 0 {
		return nil
	}
	c.index = ((c.index-1)%n + n) % n
	return c.playLocked()
}

// SelectTrack plays the track at index i.
func (c *Controller) SelectTrack(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if i < 0 || i >= c.list.Len() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	c.index = i
	return c.playLocked()
}

// Tick refreshes the elapsed position and handles the end of a track:
// the same track is replayed with repeat on, otherwise Next runs.
// Callers invoke it on a fixed cadence.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.playing || c.paused {
		return nil
	}
	c.elapsed = c.backend.Elapsed()

	if c.backend.IsBusy() {
		return nil
	}
	c.logger.WithField("index", c.index).Debug("Track finished")
	if c.list.IsEmpty() {
		c.stopLocked()
		return nil
	}
	if c.repeat {
		return c.playLocked()
	}
	return c.nextLocked()
}

// stopLocked ends playback with nothing left to play.
func (c *Controller) stopLocked() {
	prev := stateOf(c.playing, c.paused)
	c.backend.Stop()
	c.playing, c.paused = false, false
	c.current = nil
	c.started = -1
	c.elapsed = 0
	c.emitState(prev, StateStopped)
}
