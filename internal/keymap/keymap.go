package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "episodes"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
	{[]string{"?"}, ActionHelp, "Toggle help", "global"},
	{[]string{"r"}, ActionRefresh, "Rescan library", "global"},

	// Playback
	{[]string{" "}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"n"}, ActionNextEpisode, "Next episode", "playback"},
	{[]string{"p"}, ActionPrevEpisode, "Previous episode", "playback"},
	{[]string{"l"}, ActionToggleLoop, "Toggle loop", "playback"},
	{[]string{"s"}, ActionToggleShuffle, "Toggle shuffle", "playback"},
	{[]string{"right"}, ActionSeekForward, "Seek forward", "playback"},
	{[]string{"left"}, ActionSeekBack, "Seek back", "playback"},
	{[]string{"x"}, ActionStop, "Stop and clear", "playback"},

	// Episode list
	{[]string{"k", "up"}, ActionMoveUp, "Move up", "episodes"},
	{[]string{"j", "down"}, ActionMoveDown, "Move down", "episodes"},
	{[]string{"g", "home"}, ActionJumpStart, "First episode", "episodes"},
	{[]string{"G", "end"}, ActionJumpEnd, "Last episode", "episodes"},
	{[]string{"ctrl+u", "pgup"}, ActionPageUp, "Page up", "episodes"},
	{[]string{"ctrl+d", "pgdown"}, ActionPageDown, "Page down", "episodes"},
	{[]string{"enter"}, ActionPlayFromHere, "Play from here", "episodes"},
	{[]string{"o"}, ActionPlayOne, "Play episode only", "episodes"},
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

// KeyBinding converts b into a bubbles key binding for the help view.
func (b Binding) KeyBinding() key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(displayKey(b.Keys[0]), b.Description),
	)
}

func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "right":
		return "→"
	case "left":
		return "←"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}
