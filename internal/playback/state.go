package playback

import "github.com/llehouerou/podwaves/internal/episode"

// State is a point-in-time copy of the store's playback state.
// Index is meaningful only when Episodes is non-empty.
type State struct {
	Episodes  []episode.Episode
	Index     int
	Playing   bool
	Looping   bool
	Shuffling bool
}

// Current returns the episode at Index, or false when the queue is empty
// or Index does not point into it.
func (s State) Current() (episode.Episode, bool) {
	if s.Index < 0 || s.Index >= len(s.Episodes) {
		return episode.Episode{}, false
	}
	return s.Episodes[s.Index], true
}

// IsEmpty reports whether the queue holds no episodes.
func (s State) IsEmpty() bool {
	return len(s.Episodes) == 0
}
