package playback

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendState(StateChange{Playing: true})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			assert.Equal(t, eventBufferSize, count)
			return
		}
	}
}

func TestStore_EmitsEpisodeAndState(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := New()
		sub := s.Subscribe()

		require.NoError(t, s.PlayList(eps("A", "B", "C"), 1))

		ec := <-sub.EpisodeChanged
		assert.Equal(t, 1, ec.Index)
		assert.Equal(t, 3, ec.QueueLen)
		require.NotNil(t, ec.Current)
		assert.Equal(t, "B", ec.Current.Title)

		sc := <-sub.StateChanged
		assert.True(t, sc.Playing)

		s.PlayNext()
		ec = <-sub.EpisodeChanged
		assert.Equal(t, 1, ec.PreviousIndex)
		assert.Equal(t, 2, ec.Index)
	})
}

func TestStore_NoEventWithoutChange(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A"), 0))
	sub := s.Subscribe()

	s.PlayNext()            // at end: no-op
	s.PlayPrevious()        // at start: no-op
	s.SetPlayingState(true) // already playing
	s.SetLooping(false)     // already off

	select {
	case e := <-sub.EpisodeChanged:
		t.Fatalf("unexpected episode event %+v", e)
	case e := <-sub.StateChanged:
		t.Fatalf("unexpected state event %+v", e)
	case e := <-sub.ModeChanged:
		t.Fatalf("unexpected mode event %+v", e)
	default:
	}
}

func TestStore_EmitsModeChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := New()
		sub := s.Subscribe()

		s.ToggleShuffle()
		m := <-sub.ModeChanged
		assert.True(t, m.Shuffling)
		assert.False(t, m.Looping)

		s.ToggleLoop()
		m = <-sub.ModeChanged
		assert.True(t, m.Shuffling)
		assert.True(t, m.Looping)
	})
}

func TestStore_ClearEmitsEmptyEpisode(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := New()
		require.NoError(t, s.PlayList(eps("A"), 0))
		sub := s.Subscribe()

		s.Clear()

		ec := <-sub.EpisodeChanged
		assert.Nil(t, ec.Current)
		assert.Equal(t, 0, ec.QueueLen)
		sc := <-sub.StateChanged
		assert.False(t, sc.Playing)
	})
}

func TestStore_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := New()
		sub := s.Subscribe()

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())
		<-sub.Done

		late := s.Subscribe()
		<-late.Done

		// Mutators keep working after close; nobody is notified.
		s.Play(eps("A")[0])
		assert.Equal(t, 1, s.Len())
	})
}
