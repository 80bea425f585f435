// Package surface binds the playback store to an audio player. The store
// decides what should play; the surface makes the player do it and feeds the
// player's own play/pause/end notifications back into the store.
package surface

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/playback"
	"github.com/llehouerou/podwaves/internal/player"
	"github.com/llehouerou/podwaves/internal/ui/playerbar"
)

// Surface is safe for concurrent use. The TUI drives it from Update, the
// media-key server from D-Bus handlers.
type Surface struct {
	store  *playback.Store
	player player.Interface
	sub    *playback.Subscription

	mu        sync.Mutex
	loadedURL string
	loadFail  bool
	duration  time.Duration
}

// New creates a surface. It subscribes to the store so that a reselection of
// the loaded episode (shuffle drawing the same index, Play on the same
// episode) restarts it.
func New(store *playback.Store, p player.Interface) *Surface {
	return &Surface{
		store:  store,
		player: p,
		sub:    store.Subscribe(),
	}
}

// Sync reconciles the player with the store: it loads the current episode
// when the selection changed, matches play/pause to the playing flag, applies
// the loop mode and stops the player once the queue is empty.
//
// A load failure leaves the store paused and is returned; Sync does not retry
// until the playing flag is set again.
func (s *Surface) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reselected := s.drainSelections()
	st := s.store.Snapshot()

	cur, ok := st.Current()
	if !ok {
		if s.loadedURL != "" {
			s.player.Stop()
			log.Debug().Str("url", s.loadedURL).Msg("queue empty, player stopped")
		}
		s.loadedURL = ""
		s.loadFail = false
		s.duration = 0
		return nil
	}

	s.player.SetLoop(st.Looping)

	if reselected || cur.URL != s.loadedURL {
		return s.loadLocked(cur.URL, cur.Length(), st.Playing)
	}

	if s.loadFail {
		if st.Playing {
			return s.loadLocked(cur.URL, cur.Length(), true)
		}
		return nil
	}

	switch state := s.player.State(); {
	case st.Playing && state != player.Playing:
		if err := s.player.Play(); err != nil {
			s.store.SetPlayingState(false)
			return errors.Wrap(err, "resume playback")
		}
	case !st.Playing && state == player.Playing:
		s.player.Pause()
	}
	return nil
}

func (s *Surface) loadLocked(url string, length time.Duration, playing bool) error {
	s.loadedURL = url
	s.duration = length

	if err := s.player.Load(url); err != nil {
		s.loadFail = true
		s.store.SetPlayingState(false)
		log.Warn().Err(err).Str("url", url).Msg("episode load failed")
		return errors.Wrapf(err, "load %s", url)
	}
	s.loadFail = false
	log.Debug().Str("url", url).Bool("playing", playing).Msg("episode loaded")

	// Load starts the stream; a paused store keeps it paused at 0.
	if !playing {
		s.player.Pause()
	}
	return nil
}

// drainSelections reports whether the store emitted an episode change since
// the last call.
func (s *Surface) drainSelections() bool {
	changed := false
	for {
		select {
		case <-s.sub.EpisodeChanged:
			changed = true
		default:
			return changed
		}
	}
}

// HandleEvent applies a player notification to the store. Events for an
// episode other than the loaded one are stale and ignored. The caller runs
// Sync afterwards.
func (s *Surface) HandleEvent(ev player.Event) {
	s.mu.Lock()
	if ev.URL != "" && ev.URL != s.loadedURL {
		s.mu.Unlock()
		log.Debug().Stringer("event", ev.Kind).Str("url", ev.URL).Msg("stale player event dropped")
		return
	}
	if ev.Kind == player.EventMetadataReady && ev.Duration > 0 {
		s.duration = ev.Duration
	}
	s.mu.Unlock()

	// Play/pause notifications that no longer match the player are echoes
	// of commands Sync has since overridden.
	switch ev.Kind {
	case player.EventPlay:
		if s.player.State() == player.Playing {
			s.store.SetPlayingState(true)
		}
	case player.EventPause:
		if s.player.State() != player.Playing {
			s.store.SetPlayingState(false)
		}
	case player.EventFinished:
		if s.store.HasNext() || s.store.IsShuffling() {
			s.store.PlayNext()
			return
		}
		s.store.SetPlayingState(false)
	case player.EventMetadataReady:
	}
}

// Seek moves playback to pos, clamped to [0, duration]. It is a no-op when
// no episode is loaded.
func (s *Surface) Seek(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadedURL == "" || s.loadFail {
		return
	}
	pos = max(pos, 0)
	if s.duration > 0 {
		pos = min(pos, s.duration)
	}
	s.player.SeekTo(pos)
}

// SeekBy moves playback by delta from the current position.
func (s *Surface) SeekBy(delta time.Duration) {
	s.Seek(s.player.Position() + delta)
}

// Position returns the playback position of the loaded episode, or 0.
func (s *Surface) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadedURL == "" || s.loadFail {
		return 0
	}
	return s.player.Position()
}

// Progress returns the playback position in whole seconds.
func (s *Surface) Progress() int {
	return int(s.Position() / time.Second)
}

// Duration returns the loaded episode's length: the decoded length once
// known, the catalog length before that.
func (s *Surface) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// State assembles what the player bar needs.
func (s *Surface) State() playerbar.State {
	st := s.store.Snapshot()
	cur, ok := st.Current()
	if !ok {
		return playerbar.State{Looping: st.Looping, Shuffling: st.Shuffling}
	}
	return playerbar.State{
		HasEpisode: true,
		Title:      cur.Title,
		Members:    cur.Members,
		Position:   s.Position(),
		Duration:   s.Duration(),
		Playing:    st.Playing,
		Looping:    st.Looping,
		Shuffling:  st.Shuffling,
		Index:      st.Index,
		QueueLen:   len(st.Episodes),
	}
}

// View renders the player bar at the given width.
func (s *Surface) View(width int) string {
	return playerbar.Render(s.State(), width)
}
