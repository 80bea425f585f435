package player

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipID3v2_NoTag(t *testing.T) {
	r := bytes.NewReader([]byte("fLaC\x00\x00\x00\x22rest-of-stream"))
	require.NoError(t, skipID3v2(r))

	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(0), pos)
}

func TestSkipID3v2_WithTag(t *testing.T) {
	// 10-byte header, syncsafe size 0x0101 = 129 bytes of tag body.
	header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 1, 1}
	data := append(header, make([]byte, 129)...)
	data = append(data, []byte("fLaC")...)

	r := bytes.NewReader(data)
	require.NoError(t, skipID3v2(r))

	rest, _ := io.ReadAll(r)
	assert.Equal(t, "fLaC", string(rest))
}

func TestSkipID3v2_ShortInput(t *testing.T) {
	r := bytes.NewReader([]byte("ID3"))
	require.NoError(t, skipID3v2(r))

	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(0), pos)
}

func TestPathFromURL(t *testing.T) {
	assert.Equal(t, "/a/b.mp3", pathFromURL("/a/b.mp3"))
	assert.Equal(t, "/a/b c.mp3", pathFromURL("file:///a/b%20c.mp3"))
}

func TestDecodeFile_Unsupported(t *testing.T) {
	_, _, err := decodeFile("/podcasts/episode.ogg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeFile_Missing(t *testing.T) {
	_, _, err := decodeFile(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestProbe_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.flac")
	require.NoError(t, os.WriteFile(path, []byte("definitely not flac"), 0o600))

	_, err := Probe(path)
	assert.Error(t, err)
}

func TestPlayer_PlayWithoutLoad(t *testing.T) {
	p := New()
	defer p.Close()

	err := p.Play()
	assert.True(t, errors.Is(err, ErrNothingLoaded))
	assert.Equal(t, Stopped, p.State())
	assert.Zero(t, p.Position())
}

func TestPlayer_LoadFailureKeepsStopped(t *testing.T) {
	p := New()
	defer p.Close()

	err := p.Load("file:///nowhere/episode.ogg")
	require.Error(t, err)
	assert.Equal(t, Stopped, p.State())
	assert.Empty(t, p.URL())

	p.SetLoop(true)
	assert.True(t, p.Looping())
}

func TestPlayer_CloseIsIdempotent(t *testing.T) {
	p := New()
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, ok := <-p.Events()
	assert.False(t, ok, "events channel closed")
}
