package notify

import (
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/episode"
	"github.com/llehouerou/podwaves/internal/playback"
)

const episodeTimeout = 5000

// Watch announces every newly selected episode until the store closes the
// subscription. Each announcement replaces the previous one. Run it in its
// own goroutine.
func Watch(sub *playback.Subscription, n Notifier) {
	var lastID uint32
	for {
		select {
		case <-sub.Done:
			return
		case ev := <-sub.EpisodeChanged:
			if ev.Current == nil {
				continue
			}
			id, err := n.Notify(episodeNotification(*ev.Current, lastID))
			if err != nil {
				log.Debug().Err(err).Str("episode", ev.Current.Title).Msg("notification failed")
				continue
			}
			lastID = id
		}
	}
}

func episodeNotification(ep episode.Episode, replaces uint32) Notification {
	return Notification{
		Title:      ep.Title,
		Body:       ep.Members,
		Icon:       ep.ThumbnailPath(),
		Timeout:    episodeTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}
