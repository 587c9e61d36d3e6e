package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list"
}

// All contains all key bindings, used for dispatch and help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionOpenFolder, []string{"o"}, "Open folder", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionPlay, []string{"P"}, "Restart track", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionToggleRepeat, []string{"R"}, "Toggle repeat", "playback"},

	// Track list
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "list"},
	{ActionJumpToNow, []string{"c"}, "Jump to playing track", "list"},
	{ActionSelect, []string{"enter"}, "Play selected track", "list"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// KeyLabel returns the printable name of a key for help output.
func KeyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
