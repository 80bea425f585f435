package notify

import (
	"sync"
	"testing"
	"testing/synctest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/podwaves/internal/episode"
	"github.com/llehouerou/podwaves/internal/playback"
)

func TestUrgencyValues(t *testing.T) {
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

type recorder struct {
	mu     sync.Mutex
	sent   []Notification
	nextID uint32
	err    error
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	r.nextID++
	return r.nextID, nil
}

func (r *recorder) Close(uint32) error { return nil }

func (r *recorder) notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

var eps = []episode.Episode{
	{Title: "One", Members: "Ana", URL: "file:///p/1.mp3", Thumbnail: "file:///p/cover.jpg"},
	{Title: "Two", URL: "file:///p/2.mp3"},
}

func TestWatch_AnnouncesEpisodes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store := playback.New()
		rec := &recorder{}
		done := make(chan struct{})
		go func() {
			Watch(store.Subscribe(), rec)
			close(done)
		}()
		synctest.Wait()

		require.NoError(t, store.PlayList(eps, 0))
		synctest.Wait()
		store.PlayNext()
		synctest.Wait()
		store.TogglePlay() // state change only
		store.Clear()      // empty queue: nothing to announce
		synctest.Wait()

		require.NoError(t, store.Close())
		<-done

		sent := rec.notifications()
		require.Len(t, sent, 2)
		assert.Equal(t, Notification{
			Title:   "One",
			Body:    "Ana",
			Icon:    "/p/cover.jpg",
			Timeout: episodeTimeout,
			Urgency: UrgencyLow,
		}, sent[0])
		assert.Equal(t, "Two", sent[1].Title)
		assert.Equal(t, uint32(1), sent[1].ReplacesID)
	})
}

func TestWatch_ContinuesAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store := playback.New()
		rec := &recorder{err: errors.New("bus gone")}
		done := make(chan struct{})
		go func() {
			Watch(store.Subscribe(), rec)
			close(done)
		}()
		synctest.Wait()

		store.Play(eps[0])
		synctest.Wait()

		rec.mu.Lock()
		rec.err = nil
		rec.mu.Unlock()
		store.Play(eps[1])
		synctest.Wait()

		require.NoError(t, store.Close())
		<-done

		sent := rec.notifications()
		require.Len(t, sent, 1)
		assert.Equal(t, "Two", sent[0].Title)
		assert.Zero(t, sent[0].ReplacesID)
	})
}
