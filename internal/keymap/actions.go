// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionOpenFolder Action = "open_folder"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionPlay          Action = "play" // restart current track
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionToggleRepeat  Action = "toggle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Track list actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - play highlighted track
	ActionJumpToNow Action = "jump_to_now"
)
