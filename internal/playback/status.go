package playback

import (
	"fmt"
	"time"
)

// Status is a snapshot of everything a front-end displays.
type Status struct {
	State   State
	Index   int // -1 when the playlist is empty
	Track   *Track
	Elapsed time.Duration
	Total   time.Duration
	Shuffle bool
	Repeat  bool
}

// Status returns the current snapshot.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		State:   stateOf(c.playing, c.paused),
		Index:   c.indexLocked(),
		Elapsed: c.elapsed,
		Shuffle: c.shuffle,
		Repeat:  c.repeat,
	}
	if c.current != nil {
		t := *c.current
		s.Track = &t
		s.Total = t.Duration
	}
	return s
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stateOf(c.playing, c.paused)
}

// Index returns the current index, or -1 when the playlist is empty.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexLocked()
}

func (c *Controller) indexLocked() int {
	if c.list.IsEmpty() {
		return -1
	}
	return c.index
}

// Progress returns elapsed/total as a percentage in [0, 100].
// Unknown totals yield 0.
func (s Status) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Elapsed) / float64(s.Total) * 100
	return min(max(p, 0), 100)
}

// ElapsedLabel returns the elapsed time as MM:SS.
func (s Status) ElapsedLabel() string { return FormatClock(s.Elapsed) }

// TotalLabel returns the track length as MM:SS.
func (s Status) TotalLabel() string { return FormatClock(s.Total) }

// FormatClock formats d as zero-padded minutes and seconds. Fractions of a
// second are truncated and minutes are not wrapped at one hour.
func FormatClock(d time.Duration) string {
	secs := max(int64(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
