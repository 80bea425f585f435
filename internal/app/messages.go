// internal/app/messages.go
package app

import (
	"time"

	"github.com/llehouerou/podwaves/internal/catalog"
	"github.com/llehouerou/podwaves/internal/player"
)

// TickMsg refreshes the progress display.
type TickMsg time.Time

// PlayerEventMsg carries a notification from the audio player.
type PlayerEventMsg struct {
	Event player.Event
}

// PlayerClosedMsg is sent once the player's event channel closes.
type PlayerClosedMsg struct{}

// StoreChangedMsg is sent for any playback store event, whatever changed.
type StoreChangedMsg struct{}

// StoreClosedMsg is sent once the store closes the subscription.
type StoreClosedMsg struct{}

// EpisodesLoadedMsg carries the catalog listing.
type EpisodesLoadedMsg struct {
	Entries []catalog.Entry
	Err     error
}

// ScanDoneMsg reports a finished library scan.
type ScanDoneMsg struct {
	Report catalog.ScanReport
	Err    error
}
