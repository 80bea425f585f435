//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/playback"
)

const busName = "podwaves"

// Adapter publishes the store on the session bus.
type Adapter struct {
	server *server.Server
	sub    *playback.Subscription
	wg     sync.WaitGroup
}

// New registers the MPRIS server and starts forwarding store changes as
// PropertiesChanged signals.
func New(store *playback.Store, transport Transport) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{store: store, transport: transport}),
		sub:    store.Subscribe(),
	}
	ev := events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	a.wg.Add(1)
	go a.forward(ev)

	return a, nil
}

// forward runs until the store closes the subscription.
func (a *Adapter) forward(ev *events.EventHandler) {
	defer a.wg.Done()
	for {
		var err error
		select {
		case <-a.sub.Done:
			return
		case <-a.sub.EpisodeChanged:
			err = ev.Player.OnTitle()
		case <-a.sub.StateChanged:
			err = ev.Player.OnPlayPause()
		case <-a.sub.ModeChanged:
			err = ev.Player.OnOptions()
		}
		if err != nil {
			log.Debug().Err(err).Msg("mpris signal failed")
		}
	}
}

// Close unregisters from D-Bus. The forwarding goroutine exits when the
// store is closed.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// Wait blocks until forwarding has stopped.
func (a *Adapter) Wait() {
	a.wg.Wait()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is refused: the TUI owns the process lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "podwaves", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter plus the
// loop and shuffle extensions.
type playerAdapter struct {
	store     *playback.Store
	transport Transport
}

func (p *playerAdapter) Next() error {
	p.store.PlayNext()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.store.PlayPrevious()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.store.SetPlayingState(false)
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.store.IsEmpty() {
		return nil
	}
	p.store.TogglePlay()
	return nil
}

// Stop pauses and rewinds; the queue is kept.
func (p *playerAdapter) Stop() error {
	p.store.SetPlayingState(false)
	p.transport.Seek(0)
	return nil
}

func (p *playerAdapter) Play() error {
	if p.store.IsEmpty() {
		return nil
	}
	p.store.SetPlayingState(true)
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.transport.SeekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	cur, ok := p.store.Current()
	if !ok || trackID != trackPath(cur.URL) {
		return nil // stale request for another episode
	}
	p.transport.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch {
	case p.store.IsEmpty():
		return types.PlaybackStatusStopped, nil
	case p.store.IsPlaying():
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error)   { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error  { return nil }
func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	cur, ok := p.store.Current()
	if !ok {
		return types.Metadata{}, nil
	}

	length := p.transport.Duration()
	if length <= 0 {
		length = cur.Length()
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackPath(cur.URL)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   cur.Title,
		ArtUrl:  cur.Thumbnail,
	}
	if cur.Members != "" {
		meta.Artist = []string{cur.Members}
	}
	return meta, nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.transport.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// CanGoNext is true whenever PlayNext would move: a following episode, or
// any non-empty queue while shuffling.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.store.HasNext() || (p.store.IsShuffling() && !p.store.IsEmpty()), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.store.HasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error)    { return !p.store.IsEmpty(), nil }
func (p *playerAdapter) CanPause() (bool, error)   { return !p.store.IsEmpty(), nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return !p.store.IsEmpty(), nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus maps the single loop flag to Track: looping repeats the
// current episode.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.store.IsLooping() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus treats Playlist like Track; there is no queue repeat.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.store.SetLooping(status != types.LoopStatusNone)
	return nil
}

func (p *playerAdapter) Shuffle() (bool, error) {
	return p.store.IsShuffling(), nil
}

func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.store.SetShuffling(shuffle)
	return nil
}

func trackPath(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
