package playback

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/library"
	"github.com/llehouerou/foldplay/internal/playlist"
)

// LoadFolder replaces the playlist with the audio files in dir, in directory
// order, and starts the first one. An empty result leaves the playlist empty
// and does not touch the backend or the playback state.
func (c *Controller) LoadFolder(dir string) error {
	if c.isClosed() {
		return nil
	}
	tracks, err := library.Scan(dir, c.scan)
	if err != nil {
		c.logger.WithError(err).WithField("folder", dir).Error("Folder scan failed")
		c.emitError("load folder", dir, err)
		return fmt.Errorf("load folder: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	c.folder = dir
	c.list.Replace(tracks...)
	// A running track belongs to the old playlist.
	c.started = -1
	c.logger.WithFields(logrus.Fields{
		"folder": dir,
		"tracks": len(tracks),
	}).Info("Folder loaded")

	if c.list.IsEmpty() {
		c.emitQueue(QueueChange{Folder: dir, Index: -1})
		return nil
	}

	c.index = 0
	c.emitQueue(QueueChange{Folder: dir, Tracks: c.list.Tracks(), Index: 0})
	return c.playLocked()
}

// Rescan re-reads the loaded folder and replaces the playlist without
// interrupting playback. See ReplaceTracks.
func (c *Controller) Rescan() error {
	c.mu.Lock()
	dir, closed := c.folder, c.closed
	c.mu.Unlock()
	if closed || dir == "" {
		return nil
	}

	tracks, err := library.Scan(dir, c.scan)
	if err != nil {
		c.emitError("rescan folder", dir, err)
		return fmt.Errorf("rescan folder: %w", err)
	}
	c.ReplaceTracks(tracks...)
	return nil
}

// ReplaceTracks swaps the playlist contents and keeps the current track
// selected if its path is still present. Otherwise the index is clamped to
// the new playlist, the running track plays to its end and the next advance
// starts the track now at the clamped index.
func (c *Controller) ReplaceTracks(tracks ...playlist.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	var currentPath string
	if c.current != nil {
		currentPath = c.current.Path
	} else if t := c.list.Track(c.index); t != nil {
		currentPath = t.Path
	}

	c.list.Replace(tracks...)

	if i := c.list.IndexOf(currentPath); i >= 0 {
		c.index = i
		if c.current != nil {
			c.started = i
		}
	} else {
		c.index = max(min(c.index, c.list.Len()-1), 0)
		c.started = -1
	}

	c.emitQueue(QueueChange{Folder: c.folder, Tracks: c.list.Tracks(), Index: c.indexLocked()})
}

// Folder returns the loaded folder, or "" before the first LoadFolder.
func (c *Controller) Folder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folder
}

// Tracks returns a copy of the playlist.
func (c *Controller) Tracks() []playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Tracks()
}

// Len returns the playlist length.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}
