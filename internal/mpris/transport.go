// Package mpris exposes playback to desktop media controls through the
// MPRIS2 D-Bus interface. Commands from the desktop go straight to the
// playback store; the TUI picks the change up from its store subscription.
package mpris

import "time"

// Transport is the part of the player surface media controls need.
type Transport interface {
	Seek(pos time.Duration)
	SeekBy(delta time.Duration)
	Position() time.Duration
	Duration() time.Duration
}
