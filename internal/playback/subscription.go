package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	EpisodeChanged <-chan EpisodeChange
	StateChanged   <-chan StateChange
	ModeChanged    <-chan ModeChange
	Done           <-chan struct{}

	episodeCh chan EpisodeChange
	stateCh   chan StateChange
	modeCh    chan ModeChange
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		episodeCh: make(chan EpisodeChange, eventBufferSize),
		stateCh:   make(chan StateChange, eventBufferSize),
		modeCh:    make(chan ModeChange, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.EpisodeChanged = s.episodeCh
	s.StateChanged = s.stateCh
	s.ModeChanged = s.modeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// Sends never block: a full buffer drops the event.

func (s *Subscription) sendEpisode(e EpisodeChange) {
	select {
	case s.episodeCh <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}
