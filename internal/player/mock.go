package player

import (
	"sync"
	"time"
)

// Mock is a test double for Backend. It records every call and lets tests
// drive IsBusy and Elapsed directly.
type Mock struct {
	mu       sync.Mutex
	calls    []string
	loads    []string
	loadErr  error
	busy     bool
	paused   bool
	loaded   bool
	elapsed  time.Duration
	autoBusy bool
}

var _ Backend = (*Mock)(nil)

// NewMock creates a mock backend. A track becomes busy when played.
func NewMock() *Mock {
	return &Mock{autoBusy: true}
}

func (m *Mock) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "load")
	m.loads = append(m.loads, path)
	if m.loadErr != nil {
		m.loaded = false
		return m.loadErr
	}
	m.loaded = true
	m.busy = false
	m.paused = false
	m.elapsed = 0
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "play")
	if m.loaded && m.autoBusy {
		m.busy = true
	}
	m.paused = false
	m.elapsed = 0
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "pause")
	m.paused = true
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "resume")
	m.paused = false
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "stop")
	m.busy = false
	m.paused = false
	m.loaded = false
	m.elapsed = 0
}

func (m *Mock) IsBusy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

func (m *Mock) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Test helpers

// SetBusy overrides the busy flag, e.g. false to simulate a finished track.
func (m *Mock) SetBusy(busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = busy
}

// SetElapsed sets the position reported by Elapsed.
func (m *Mock) SetElapsed(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elapsed = d
}

// SetLoadError makes subsequent Load calls fail with err.
func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// Paused reports whether the last pause/resume left the backend paused.
func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Calls returns the recorded method names in call order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Loads returns the paths passed to Load in call order.
func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

// LastLoad returns the most recently loaded path, or "" if none.
func (m *Mock) LastLoad() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.loads) == 0 {
		return ""
	}
	return m.loads[len(m.loads)-1]
}

// Reset clears the call log.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.loads = nil
}
