// internal/app/handlers_playback.go
package app

import (
	"github.com/llehouerou/podwaves/internal/errmsg"
	"github.com/llehouerou/podwaves/internal/keymap"
)

// handlePlaybackAction applies a playback action and reports whether the
// action was a playback one. Transport controls do nothing until an episode
// is selected.
func (m *Model) handlePlaybackAction(action keymap.Action) bool {
	switch action { //nolint:exhaustive // only playback actions
	case keymap.ActionPlayFromHere:
		if m.list.Len() == 0 {
			return true
		}
		if err := m.store.PlayList(m.list.Episodes(), m.list.Cursor()); err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaybackQueue, err))
			return true
		}
	case keymap.ActionPlayOne:
		ep, ok := m.list.Selected()
		if !ok {
			return true
		}
		m.store.Play(ep)
	case keymap.ActionPlayPause,
		keymap.ActionNextEpisode,
		keymap.ActionPrevEpisode,
		keymap.ActionToggleLoop,
		keymap.ActionToggleShuffle,
		keymap.ActionSeekForward,
		keymap.ActionSeekBack,
		keymap.ActionStop:
		if _, ok := m.store.Current(); !ok {
			return true
		}
		m.applyTransport(action)
	default:
		return false
	}
	m.sync()
	return true
}

func (m *Model) applyTransport(action keymap.Action) {
	switch action { //nolint:exhaustive // transport subset
	case keymap.ActionPlayPause:
		m.store.TogglePlay()
	case keymap.ActionNextEpisode:
		m.store.PlayNext()
	case keymap.ActionPrevEpisode:
		m.store.PlayPrevious()
	case keymap.ActionToggleLoop:
		m.store.ToggleLoop()
	case keymap.ActionToggleShuffle:
		m.store.ToggleShuffle()
	case keymap.ActionSeekForward:
		m.surface.SeekBy(m.seekStep)
	case keymap.ActionSeekBack:
		m.surface.SeekBy(-m.seekStep)
	case keymap.ActionStop:
		m.store.Clear()
	}
}
