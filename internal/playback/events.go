package playback

import "github.com/llehouerou/podwaves/internal/episode"

// EpisodeChange is emitted when the active episode may have changed:
// the queue was replaced or the index moved.
//
// Emitted by Play, PlayList, PlayNext, PlayPrevious and Clear. A PlayNext
// in shuffle mode that draws the current index again still emits, so the
// surface restarts the episode the way a fresh selection would.
type EpisodeChange struct {
	PreviousIndex int
	Index         int
	Current       *episode.Episode // nil when the queue is empty
	QueueLen      int
}

// StateChange is emitted when the playing flag flips.
type StateChange struct {
	Playing bool
}

// ModeChange is emitted when looping or shuffling changes.
type ModeChange struct {
	Looping   bool
	Shuffling bool
}
