package playback

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/podwaves/internal/episode"
)

func eps(titles ...string) []episode.Episode {
	out := make([]episode.Episode, len(titles))
	for i, t := range titles {
		out[i] = episode.Episode{Title: t, URL: "/podcasts/" + t + ".mp3", Duration: 60 * (i + 1)}
	}
	return out
}

func titles(list []episode.Episode) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Title
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	st := s.Snapshot()

	assert.Empty(t, st.Episodes)
	assert.False(t, st.Playing)
	assert.False(t, st.Looping)
	assert.False(t, st.Shuffling)
	assert.True(t, s.IsEmpty())

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestPlay_ReplacesQueue(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B", "C"), 2))

	x := episode.Episode{Title: "X", URL: "/x.mp3"}
	s.Play(x)

	st := s.Snapshot()
	assert.Equal(t, []string{"X"}, titles(st.Episodes))
	assert.Equal(t, 0, st.Index)
	assert.True(t, st.Playing)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, x, cur)
}

func TestPlay_OnEmptyStore(t *testing.T) {
	s := New()
	s.Play(episode.Episode{Title: "solo"})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Index())
	assert.True(t, s.IsPlaying())
}

func TestPlayList_SetsQueueAndIndex(t *testing.T) {
	list := eps("A", "B", "C", "D")
	for i := range list {
		s := New()
		require.NoError(t, s.PlayList(list, i))

		st := s.Snapshot()
		assert.Equal(t, list, st.Episodes)
		assert.Equal(t, i, st.Index)
		assert.True(t, st.Playing)
	}
}

func TestPlayList_CopiesInput(t *testing.T) {
	list := eps("A", "B")
	s := New()
	require.NoError(t, s.PlayList(list, 0))

	list[0].Title = "mutated"

	cur, _ := s.Current()
	assert.Equal(t, "A", cur.Title)
}

func TestPlayList_RejectsInvalidIndex(t *testing.T) {
	tests := []struct {
		name  string
		list  []episode.Episode
		index int
	}{
		{"negative", eps("A", "B"), -1},
		{"past end", eps("A", "B"), 2},
		{"far past end", eps("A"), 10},
		{"empty list", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			require.NoError(t, s.PlayList(eps("keep"), 0))
			s.SetPlayingState(false)
			before := s.Snapshot()

			err := s.PlayList(tt.list, tt.index)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Equal(t, before, s.Snapshot(), "state must be untouched")
		})
	}
}

func TestTogglePlay_Involution(t *testing.T) {
	for _, start := range []bool{false, true} {
		s := New()
		s.SetPlayingState(start)

		s.TogglePlay()
		assert.Equal(t, !start, s.IsPlaying())
		s.TogglePlay()
		assert.Equal(t, start, s.IsPlaying())
	}
}

func TestSetPlayingState(t *testing.T) {
	s := New()
	s.SetPlayingState(true)
	assert.True(t, s.IsPlaying())
	s.SetPlayingState(true)
	assert.True(t, s.IsPlaying())
	s.SetPlayingState(false)
	assert.False(t, s.IsPlaying())
}

func TestToggleLoopAndShuffle_Independent(t *testing.T) {
	s := New()

	s.ToggleLoop()
	assert.True(t, s.IsLooping())
	assert.False(t, s.IsShuffling())
	assert.False(t, s.IsPlaying())

	s.ToggleShuffle()
	assert.True(t, s.IsLooping())
	assert.True(t, s.IsShuffling())

	s.ToggleLoop()
	s.ToggleShuffle()
	assert.False(t, s.IsLooping())
	assert.False(t, s.IsShuffling())
}

func TestSetLoopingAndShuffling(t *testing.T) {
	s := New()
	s.SetLooping(true)
	s.SetShuffling(true)
	assert.True(t, s.IsLooping())
	assert.True(t, s.IsShuffling())
	s.SetLooping(false)
	assert.False(t, s.IsLooping())
	assert.True(t, s.IsShuffling())
}

func TestPlayNext_Sequential(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B", "C"), 0))

	s.PlayNext()
	assert.Equal(t, 1, s.Index())
	s.PlayNext()
	assert.Equal(t, 2, s.Index())
	s.PlayNext()
	assert.Equal(t, 2, s.Index(), "no wraparound at the end")
}

func TestPlayNext_AdvancesByOne(t *testing.T) {
	list := eps("A", "B", "C", "D", "E")
	for i := 0; i < len(list)-1; i++ {
		s := New()
		require.NoError(t, s.PlayList(list, i))
		s.PlayNext()
		assert.Equal(t, i+1, s.Index())
	}
}

func TestPlayNext_LastIsNoOpEvenWhenLooping(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B"), 1))
	s.ToggleLoop()

	s.PlayNext()
	assert.Equal(t, 1, s.Index())
}

func TestPlayNext_EmptyQueue(t *testing.T) {
	s := New()
	s.PlayNext()
	assert.Equal(t, 0, s.Index())

	s.ToggleShuffle()
	assert.NotPanics(t, s.PlayNext)
	assert.True(t, s.IsEmpty())
}

func TestPlayNext_ShuffleUsesRandSource(t *testing.T) {
	var calls []int
	draws := []int{3, 3, 0}
	s := New(WithRand(func(n int) int {
		calls = append(calls, n)
		v := draws[0]
		draws = draws[1:]
		return v
	}))
	require.NoError(t, s.PlayList(eps("A", "B", "C", "D"), 1))
	s.ToggleShuffle()

	s.PlayNext()
	assert.Equal(t, 3, s.Index())
	s.PlayNext()
	assert.Equal(t, 3, s.Index(), "repeats are allowed")
	s.PlayNext()
	assert.Equal(t, 0, s.Index())

	assert.Equal(t, []int{4, 4, 4}, calls, "draws cover the whole queue")
}

func TestPlayNext_ShuffleDistribution(t *testing.T) {
	const n = 6
	const trials = 6000

	s := New()
	require.NoError(t, s.PlayList(eps("A", "B", "C", "D", "E", "F"), 0))
	s.ToggleShuffle()

	seen := make(map[int]int)
	for range trials {
		s.PlayNext()
		idx := s.Index()
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		seen[idx]++
	}

	assert.Len(t, seen, n, "every index should be drawn")
	for idx, count := range seen {
		// Expected 1000 per bucket; this bound fails with negligible probability.
		assert.Greater(t, count, trials/n/2, "index %d drawn too rarely", idx)
	}
}

func TestPlayPrevious(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B", "C"), 2))

	s.PlayPrevious()
	assert.Equal(t, 1, s.Index())
	s.PlayPrevious()
	assert.Equal(t, 0, s.Index())
	s.PlayPrevious()
	assert.Equal(t, 0, s.Index(), "no wraparound at the start")
}

func TestPlayPrevious_IgnoresShuffle(t *testing.T) {
	s := New(WithRand(func(int) int { t.Fatal("rand must not be used"); return 0 }))
	require.NoError(t, s.PlayList(eps("A", "B", "C"), 2))
	s.ToggleShuffle()

	s.PlayPrevious()
	assert.Equal(t, 1, s.Index())
}

func TestHasNextHasPrevious(t *testing.T) {
	s := New()
	assert.False(t, s.HasNext())
	assert.False(t, s.HasPrevious())

	require.NoError(t, s.PlayList(eps("A", "B"), 0))
	assert.True(t, s.HasNext())
	assert.False(t, s.HasPrevious())

	s.PlayNext()
	assert.False(t, s.HasNext())
	assert.True(t, s.HasPrevious())
}

func TestClear(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B"), 1))
	s.ToggleLoop()

	s.Clear()

	st := s.Snapshot()
	assert.Empty(t, st.Episodes)
	assert.False(t, st.Playing)
	assert.True(t, st.Looping, "modes survive a clear")
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.PlayList(eps("A", "B"), 0))

	st := s.Snapshot()
	st.Episodes[0].Title = "mutated"

	cur, _ := s.Current()
	assert.Equal(t, "A", cur.Title)
}

func TestWithState(t *testing.T) {
	s := New(WithState(State{Episodes: eps("A", "B"), Index: 1, Shuffling: true}))
	assert.Equal(t, 1, s.Index())
	assert.True(t, s.IsShuffling())
	assert.False(t, s.IsPlaying())

	bad := New(WithState(State{Episodes: eps("A"), Index: 4}))
	assert.True(t, bad.IsEmpty(), "invalid seed is ignored")
}

func TestStateCurrent(t *testing.T) {
	st := State{Episodes: eps("A", "B"), Index: 1}
	cur, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Title)

	_, ok = State{}.Current()
	assert.False(t, ok)
	assert.True(t, State{}.IsEmpty())
}
