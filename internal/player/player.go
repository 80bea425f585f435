package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"
)

// ErrNothingLoaded is returned by Play when no episode was ever loaded.
var ErrNothingLoaded = errors.New("no episode loaded")

var (
	speakerMu    sync.Mutex
	speakerRate  beep.SampleRate
	speakerReady bool
)

// Player drives the system speaker through beep.
type Player struct {
	mu       sync.Mutex
	state    State
	url      string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	duration time.Duration
	loop     atomic.Bool
	gen      uint64 // bumped on every load so stale end callbacks are ignored
	events   chan Event
	closed   bool
}

// New creates a stopped player.
func New() *Player {
	return &Player{
		state:  Stopped,
		events: make(chan Event, eventBufferSize),
	}
}

// Load stops the current stream, opens url and starts it from the beginning.
func (p *Player) Load(rawURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked(rawURL)
}

func (p *Player) loadLocked(rawURL string) error {
	p.stopLocked()

	streamer, format, err := decodeFile(pathFromURL(rawURL))
	if err != nil {
		return err
	}
	if err := ensureSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return errors.Wrap(err, "init speaker")
	}

	p.gen++
	gen := p.gen
	p.url = rawURL
	p.streamer = streamer
	p.format = format
	p.duration = format.SampleRate.D(streamer.Len())

	var out beep.Streamer = &loopStreamer{
		src:  streamer,
		loop: &p.loop,
		onLoop: func() {
			log.Debug().Str("url", rawURL).Msg("episode looped")
		},
	}
	if format.SampleRate != speakerRate {
		out = beep.Resample(4, format.SampleRate, speakerRate, out)
	}
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}

	// The callback runs on the speaker goroutine with the speaker locked.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.finished(gen)
	})))

	p.state = Playing
	p.emitLocked(Event{Kind: EventMetadataReady, URL: rawURL, Duration: p.duration})
	p.emitLocked(Event{Kind: EventPlay, URL: rawURL})
	return nil
}

func ensureSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerReady {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerRate = rate
	speakerReady = true
	return nil
}

func speakerActive() bool {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	return speakerReady
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.state == Stopped {
		return
	}
	url := p.url
	p.releaseLocked()
	p.state = Stopped
	p.emitLocked(Event{Kind: EventFinished, URL: url})
}

// Play resumes a paused stream, or reloads the last episode after it
// finished or was stopped.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Playing:
		return nil
	case Paused:
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.state = Playing
		p.emitLocked(Event{Kind: EventPlay, URL: p.url})
		return nil
	case Stopped:
	}
	if p.url == "" {
		return ErrNothingLoaded
	}
	return p.loadLocked(p.url)
}

// Pause pauses output. It does nothing unless playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
	p.emitLocked(Event{Kind: EventPause, URL: p.url})
}

// Stop halts output and releases the stream. The URL is kept so Play can
// start it again.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state == Stopped && p.streamer == nil {
		return
	}
	if speakerActive() {
		speaker.Clear()
	}
	p.releaseLocked()
	p.state = Stopped
}

func (p *Player) releaseLocked() {
	if p.streamer != nil {
		if err := p.streamer.Close(); err != nil {
			log.Debug().Err(err).Str("url", p.url).Msg("close stream")
		}
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
}

// SeekTo moves to pos, clamped to the stream bounds.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}
	target := min(max(p.format.SampleRate.N(pos), 0), p.streamer.Len())

	speaker.Lock()
	err := p.streamer.Seek(target)
	speaker.Unlock()
	if err != nil {
		log.Warn().Err(err).Dur("pos", pos).Str("url", p.url).Msg("seek failed")
	}
}

// SetLoop makes the stream restart at its end instead of finishing.
func (p *Player) SetLoop(loop bool) {
	p.loop.Store(loop)
}

// Looping reports the loop flag.
func (p *Player) Looping() bool {
	return p.loop.Load()
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// URL returns the last loaded episode URL.
func (p *Player) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the loaded stream.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Events returns the signal channel. It is closed by Close.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Close stops playback and closes the event channel.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.stopLocked()
	p.closed = true
	close(p.events)
	return nil
}

// emitLocked sends without blocking; a slow reader loses events.
func (p *Player) emitLocked(e Event) {
	if p.closed {
		return
	}
	select {
	case p.events <- e:
	default:
		log.Debug().Stringer("event", e.Kind).Msg("player event dropped")
	}
}
