// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/podwaves/internal/catalog"
	"github.com/llehouerou/podwaves/internal/episode"
	"github.com/llehouerou/podwaves/internal/playback"
	"github.com/llehouerou/podwaves/internal/player"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChannel creates a command that waits for a value from a channel and
// converts it to a message. ok is false once the channel is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchPlayer waits for the next player event.
func WatchPlayer(p player.Interface) tea.Cmd {
	if p == nil {
		return nil
	}
	return waitForChannel(p.Events(), func(ev player.Event, ok bool) tea.Msg {
		if !ok {
			return PlayerClosedMsg{}
		}
		return PlayerEventMsg{Event: ev}
	})
}

// WatchStore waits for the next store event of any kind.
func WatchStore(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.EpisodeChanged:
		case <-sub.StateChanged:
		case <-sub.ModeChanged:
		case <-sub.Done:
			return StoreClosedMsg{}
		}
		return StoreChangedMsg{}
	}
}

// LoadEpisodesCmd lists the catalog.
func LoadEpisodesCmd(c Catalog) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := c.List(context.Background())
		return EpisodesLoadedMsg{Entries: entries, Err: err}
	}
}

// ScanCmd rescans the library folders into the catalog.
func ScanCmd(c Catalog, dirs []string, probe episode.DurationProbe) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		report, err := c.Scan(context.Background(), dirs, probe)
		return ScanDoneMsg{Report: report, Err: err}
	}
}

var _ Catalog = (*catalog.Catalog)(nil)
