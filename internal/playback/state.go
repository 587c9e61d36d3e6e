package playback

// State represents the playback state.
//
//	          Play / LoadFolder (non-empty)
//	Stopped ─────────────────────────────▶ Playing ◀─┐
//	   ▲                                    │  ▲      │ Next / Previous /
//	   │ load failure                 Pause │  │Pause │ SelectTrack / Tick
//	   └────────────────────────────────────┤  │      │ (track ended)
//	                                        ▼  │      │
//	                                       Paused ────┘
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// stateOf maps the controller flags to a State. paused implies playing.
func stateOf(playing, paused bool) State {
	switch {
	case playing && paused:
		return StatePaused
	case playing:
		return StatePlaying
	default:
		return StateStopped
	}
}
