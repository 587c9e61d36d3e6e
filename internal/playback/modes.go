package playback

// Shuffle reports whether Next picks a random track.
func (c *Controller) Shuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shuffle
}

// SetShuffle enables or disables shuffle.
func (c *Controller) SetShuffle(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shuffle == enabled {
		return
	}
	c.shuffle = enabled
	c.emitMode()
}

// ToggleShuffle flips shuffle and returns the new value.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shuffle = !c.shuffle
	c.emitMode()
	return c.shuffle
}

// Repeat reports whether a finished track is replayed.
func (c *Controller) Repeat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repeat
}

// SetRepeat enables or disables repeat.
func (c *Controller) SetRepeat(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.repeat == enabled {
		return
	}
	c.repeat = enabled
	c.emitMode()
}

// ToggleRepeat flips repeat and returns the new value.
func (c *Controller) ToggleRepeat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repeat = !c.repeat
	c.emitMode()
	return c.repeat
}
