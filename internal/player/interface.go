// Package player is the media-playback primitive: it opens an episode's
// audio, drives the speaker and reports what actually happened through
// events. It holds no queue; deciding what plays is the playback store's job.
package player

import "time"

// EventKind identifies a signal from the primitive.
type EventKind int

const (
	EventPlay          EventKind = iota // output started or resumed
	EventPause                          // output paused
	EventMetadataReady                  // stream decoded, Duration known
	EventFinished                       // stream reached its end without looping
)

// String returns the event name for logs.
func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventMetadataReady:
		return "metadata-ready"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is a signal emitted by the primitive.
type Event struct {
	Kind     EventKind
	URL      string
	Duration time.Duration // set for EventMetadataReady
}

// Interface defines the primitive contract for dependency injection and testing.
type Interface interface {
	Load(url string) error
	Play() error
	Pause()
	Stop()
	SeekTo(pos time.Duration)
	SetLoop(loop bool)
	State() State
	URL() string
	Position() time.Duration
	Duration() time.Duration
	Events() <-chan Event
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)

const eventBufferSize = 16
