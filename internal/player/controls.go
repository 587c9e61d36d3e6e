package player

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Play starts the loaded track from the beginning. No-op if nothing is loaded.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	if p.started {
		speaker.Clear()
		speaker.Lock()
		_ = p.streamer.Seek(0)
		p.ctrl.Paused = false
		speaker.Unlock()
	}

	gen := p.generation.Add(1)
	p.finished.Store(false)
	p.started = true

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		if p.generation.Load() == gen {
			p.finished.Store(true)
		}
	})))
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.setPaused(true)
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.setPaused(false)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil || !p.started {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Stop stops playback and releases resources.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.ctrl == nil {
		return
	}

	// Invalidate the pending completion callback before clearing.
	p.generation.Add(1)
	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.path = ""
	p.started = false
	p.finished.Store(false)
}

// IsBusy reports whether a started track is still playing or paused.
func (p *Player) IsBusy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && !p.finished.Load()
}

// Elapsed returns the current playback position.
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}
