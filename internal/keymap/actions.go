// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionHelp    Action = "help"
	ActionRefresh Action = "refresh" // rescan library sources

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextEpisode   Action = "next_episode"
	ActionPrevEpisode   Action = "prev_episode"
	ActionToggleLoop    Action = "toggle_loop"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionStop          Action = "stop"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Selection/activation actions
	ActionPlayFromHere Action = "play_from_here" // enter - queue catalog, start at cursor
	ActionPlayOne      Action = "play_one"       // o - play a single episode
)
