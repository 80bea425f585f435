package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player. Transport calls change state and emit
// the same events the real player would.
type Mock struct {
	mu        sync.Mutex
	state     State
	url       string
	position  time.Duration
	duration  time.Duration
	loop      bool
	loadErr   error
	loadCalls []string
	seekCalls []time.Duration
	events    chan Event
	closed    bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{events: make(chan Event, 64)}
}

func (m *Mock) Load(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, url)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.url = url
	m.position = 0
	m.state = Playing
	m.emit(Event{Kind: EventMetadataReady, URL: url, Duration: m.duration})
	m.emit(Event{Kind: EventPlay, URL: url})
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.url == "" {
		return ErrNothingLoaded
	}
	if m.state != Playing {
		m.state = Playing
		m.emit(Event{Kind: EventPlay, URL: m.url})
	}
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
		m.emit(Event{Kind: EventPause, URL: m.url})
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetLoop(loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loop = loop
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

func (m *Mock) emit(e Event) {
	if m.closed {
		return
	}
	select {
	case m.events <- e:
	default:
	}
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Looping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loop
}

// SimulateFinished ends the stream the way the speaker would.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
	m.emit(Event{Kind: EventFinished, URL: m.url})
}

// SimulatePause reports a pause that did not come from Pause, e.g. an
// MPRIS client or a hardware key.
func (m *Mock) SimulatePause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Paused
	m.emit(Event{Kind: EventPause, URL: m.url})
}

// Drain returns every buffered event.
func (m *Mock) Drain() []Event {
	var out []Event
	for {
		select {
		case e, ok := <-m.events:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
