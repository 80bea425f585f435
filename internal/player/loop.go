package player

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

// loopStreamer rewinds its source at the end of the stream while loop is set.
// The flag is read on the speaker goroutine, so toggling takes effect at the
// next end of stream without touching the speaker lock.
type loopStreamer struct {
	src    beep.StreamSeeker
	loop   *atomic.Bool
	onLoop func()
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.src.Stream(samples[n:])
		n += sn
		if sok && sn > 0 {
			continue
		}
		// End of stream.
		if !l.loop.Load() || l.src.Len() == 0 {
			return n, n > 0
		}
		if err := l.src.Seek(0); err != nil {
			return n, n > 0
		}
		if l.onLoop != nil {
			l.onLoop()
		}
	}
	return n, true
}

func (l *loopStreamer) Err() error { return l.src.Err() }
