// internal/app/keys.go
package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/podwaves/internal/keymap"
)

// helpKeys adapts the key bindings to bubbles/help.
type helpKeys struct{}

// ShortHelp lists the playback essentials.
func (helpKeys) ShortHelp() []key.Binding {
	short := []keymap.Action{
		keymap.ActionPlayFromHere,
		keymap.ActionPlayPause,
		keymap.ActionNextEpisode,
		keymap.ActionPrevEpisode,
		keymap.ActionToggleShuffle,
		keymap.ActionToggleLoop,
		keymap.ActionHelp,
		keymap.ActionQuit,
	}
	out := make([]key.Binding, 0, len(short))
	for _, a := range short {
		for _, b := range keymap.All {
			if b.Action == a {
				out = append(out, b.KeyBinding())
				break
			}
		}
	}
	return out
}

// FullHelp groups every binding by context, one column each.
func (helpKeys) FullHelp() [][]key.Binding {
	contexts := []string{"playback", "episodes", "global"}
	out := make([][]key.Binding, 0, len(contexts))
	for _, c := range contexts {
		var col []key.Binding
		for _, b := range keymap.ByContext(c) {
			col = append(col, b.KeyBinding())
		}
		out = append(out, col)
	}
	return out
}
