package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"

	"github.com/llehouerou/foldplay/internal/keymap"
)

// helpContexts is the column order of the full help view.
var helpContexts = []string{"playback", "list", "global"}

// helpKeys adapts keymap.All to help.KeyMap.
type helpKeys struct {
	groups [][]key.Binding
	short  []key.Binding
}

var _ help.KeyMap = helpKeys{}

func newHelpKeys() helpKeys {
	var h helpKeys
	for _, ctx := range helpContexts {
		h.groups = append(h.groups, lo.Map(keymap.ByContext(ctx), func(b keymap.Binding, _ int) key.Binding {
			return toKeyBinding(b)
		}))
	}

	shortActions := []keymap.Action{
		keymap.ActionPlayPause,
		keymap.ActionNextTrack,
		keymap.ActionPrevTrack,
		keymap.ActionOpenFolder,
		keymap.ActionHelp,
		keymap.ActionQuit,
	}
	keys := keymap.Default()
	for _, action := range shortActions {
		if b, ok := keys.Binding(action); ok {
			h.short = append(h.short, toKeyBinding(b))
		}
	}
	return h
}

func toKeyBinding(b keymap.Binding) key.Binding {
	labels := lo.Map(b.Keys, func(k string, _ int) string { return keymap.KeyLabel(k) })
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(strings.Join(labels, "/"), strings.ToLower(b.Description)),
	)
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.groups }
