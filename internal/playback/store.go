// Package playback owns the playback state of a session: the episode queue,
// the active index and the playing/looping/shuffling flags, together with
// the policy that decides what plays next.
//
// A Store is created at startup, handed to every consumer and closed at
// shutdown. Consumers read through Snapshot or the query methods and change
// state only through the mutators.
package playback

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/podwaves/internal/episode"
)

// ErrInvalidArgument is returned when a mutator is given arguments that would
// leave the store with an index outside its queue.
var ErrInvalidArgument = errors.New("invalid argument")

// Option configures a Store.
type Option func(*Store)

// WithRand sets the source used by shuffle. intN must return a value in
// [0, n) for n > 0.
func WithRand(intN func(n int) int) Option {
	return func(s *Store) {
		s.intN = intN
	}
}

// WithState seeds the store, e.g. to restore a queue. Invalid seeds
// (index outside a non-empty queue) are ignored.
func WithState(st State) Option {
	return func(s *Store) {
		if len(st.Episodes) > 0 && (st.Index < 0 || st.Index >= len(st.Episodes)) {
			return
		}
		s.episodes = slices.Clone(st.Episodes)
		s.index = st.Index
		s.playing = st.Playing
		s.looping = st.Looping
		s.shuffling = st.Shuffling
	}
}

// Store is the single owner of the playback state.
type Store struct {
	mu        sync.RWMutex
	episodes  []episode.Episode
	index     int
	playing   bool
	looping   bool
	shuffling bool
	intN      func(n int) int

	subsMu sync.Mutex
	subs   []*Subscription
	closed bool
}

// New creates a store with an empty queue and every flag off.
func New(opts ...Option) *Store {
	s := &Store{intN: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play replaces the queue with a single episode and starts it.
// Any previously queued list is discarded.
func (s *Store) Play(ep episode.Episode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.index
	s.episodes = []episode.Episode{ep}
	s.index = 0
	s.emitEpisodeLocked(prev)
	s.setPlayingLocked(true)
}

// PlayList replaces the queue with list and starts the episode at index.
// The list is copied. An empty list or an index outside [0, len(list))
// is rejected with ErrInvalidArgument and leaves the state untouched.
func (s *Store) PlayList(list []episode.Episode, index int) error {
	if len(list) == 0 {
		return errors.Wrap(ErrInvalidArgument, "play list: empty list")
	}
	if index < 0 || index >= len(list) {
		return errors.Wrapf(ErrInvalidArgument,
			"play list: index %d out of range [0, %d)", index, len(list))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.index
	s.episodes = slices.Clone(list)
	s.index = index
	s.emitEpisodeLocked(prev)
	s.setPlayingLocked(true)
	return nil
}

// TogglePlay flips the playing flag.
func (s *Store) TogglePlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPlayingLocked(!s.playing)
}

// SetPlayingState sets the playing flag directly. The surface calls it when
// the media primitive reports play or pause on its own.
func (s *Store) SetPlayingState(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPlayingLocked(playing)
}

// ToggleLoop flips the looping flag.
func (s *Store) ToggleLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(!s.looping, s.shuffling)
}

// SetLooping sets the looping flag.
func (s *Store) SetLooping(looping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(looping, s.shuffling)
}

// ToggleShuffle flips the shuffling flag.
func (s *Store) ToggleShuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(s.looping, !s.shuffling)
}

// SetShuffling sets the shuffling flag.
func (s *Store) SetShuffling(shuffling bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(s.looping, shuffling)
}

// PlayNext moves to the next episode.
//
// With shuffle on, the index is drawn uniformly from the whole queue and may
// repeat the current episode. Otherwise it advances by one, and stays put on
// the last episode (no wraparound). An empty queue is left alone.
func (s *Store) PlayNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.episodes)
	if n == 0 {
		return
	}

	prev := s.index
	switch {
	case s.shuffling:
		s.index = s.intN(n)
	case s.index+1 < n:
		s.index++
	default:
		return
	}
	s.emitEpisodeLocked(prev)
}

// PlayPrevious moves back one episode. It does nothing at the first one.
func (s *Store) PlayPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index <= 0 {
		return
	}
	prev := s.index
	s.index--
	s.emitEpisodeLocked(prev)
}

// Clear empties the queue and stops playing.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.episodes) == 0 && !s.playing {
		return
	}
	prev := s.index
	s.episodes = nil
	s.index = 0
	s.emitEpisodeLocked(prev)
	s.setPlayingLocked(false)
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Episodes:  slices.Clone(s.episodes),
		Index:     s.index,
		Playing:   s.playing,
		Looping:   s.looping,
		Shuffling: s.shuffling,
	}
}

// Current returns the active episode, or false if there is none.
func (s *Store) Current() (episode.Episode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

func (s *Store) currentLocked() (episode.Episode, bool) {
	if s.index < 0 || s.index >= len(s.episodes) {
		return episode.Episode{}, false
	}
	return s.episodes[s.index], true
}

// Index returns the active index.
func (s *Store) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Len returns the number of queued episodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.episodes)
}

// IsEmpty reports whether the queue is empty.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// HasNext reports whether PlayNext would advance sequentially.
func (s *Store) HasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index+1 < len(s.episodes)
}

// HasPrevious reports whether PlayPrevious would move.
func (s *Store) HasPrevious() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index > 0 && len(s.episodes) > 0
}

// IsPlaying returns the playing flag.
func (s *Store) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

// IsLooping returns the looping flag.
func (s *Store) IsLooping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.looping
}

// IsShuffling returns the shuffling flag.
func (s *Store) IsShuffling() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffling
}

// Subscribe creates a new event subscription. Subscribing to a closed store
// returns a subscription whose Done channel is already closed.
func (s *Store) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close releases every subscription. It is safe to call more than once.
func (s *Store) Close() error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	return nil
}

// Callers must hold s.mu.

func (s *Store) setPlayingLocked(playing bool) {
	if s.playing == playing {
		return
	}
	s.playing = playing
	s.publish(func(sub *Subscription) {
		sub.sendState(StateChange{Playing: playing})
	})
}

func (s *Store) setModeLocked(looping, shuffling bool) {
	if s.looping == looping && s.shuffling == shuffling {
		return
	}
	s.looping = looping
	s.shuffling = shuffling
	s.publish(func(sub *Subscription) {
		sub.sendMode(ModeChange{Looping: looping, Shuffling: shuffling})
	})
}

func (s *Store) emitEpisodeLocked(prev int) {
	e := EpisodeChange{
		PreviousIndex: prev,
		Index:         s.index,
		QueueLen:      len(s.episodes),
	}
	if cur, ok := s.currentLocked(); ok {
		e.Current = &cur
	}
	s.publish(func(sub *Subscription) {
		sub.sendEpisode(e)
	})
}

func (s *Store) publish(send func(*Subscription)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		send(sub)
	}
}
