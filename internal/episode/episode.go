// Package episode defines the podcast episode value shared by the catalog,
// the playback store and the player surface.
package episode

import (
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// ErrNoURL is returned by Validate when an episode has no audio resource.
var ErrNoURL = errors.New("episode has no url")

// Episode is an immutable audio item. Values are copied, never mutated.
type Episode struct {
	Title     string
	Members   string // credits or description
	Thumbnail string // artwork URI
	Duration  int    // seconds
	URL       string // audio resource: file path or file:// URI
}

// Length returns Duration as a time.Duration.
func (e Episode) Length() time.Duration {
	return time.Duration(e.Duration) * time.Second
}

// Path returns the local file path of the audio resource.
func (e Episode) Path() string {
	return localPath(e.URL)
}

// ThumbnailPath returns the local file path of the artwork, or "".
func (e Episode) ThumbnailPath() string {
	return localPath(e.Thumbnail)
}

func localPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	return u.Path
}

// Validate reports whether the episode can be played.
func (e Episode) Validate() error {
	if e.URL == "" {
		return errors.Wrapf(ErrNoURL, "episode %q", e.Title)
	}
	return nil
}

// DurationProbe returns the decoded length of an audio file.
type DurationProbe func(path string) (time.Duration, error)

// FromFile builds an Episode from the tags of a local audio file.
// A missing or unreadable tag block falls back to the file name as title.
func FromFile(path string, probe DurationProbe) (Episode, error) {
	ep := Episode{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		URL:   FileURL(path),
	}
	if art := FindArtwork(path); art != "" {
		ep.Thumbnail = FileURL(art)
	}

	if probe != nil {
		d, err := probe(path)
		if err != nil {
			return Episode{}, errors.Wrapf(err, "probe %s", path)
		}
		ep.Duration = int(d / time.Second)
	}

	f, err := os.Open(path)
	if err != nil {
		return Episode{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged files are still playable.
		return ep, nil //nolint:nilerr // fall back to file name
	}

	if t := strings.TrimSpace(m.Title()); t != "" {
		ep.Title = t
	}
	ep.Members = membersOf(m)
	return ep, nil
}

func membersOf(m tag.Metadata) string {
	var parts []string
	for _, s := range []string{m.Artist(), m.Composer()} {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(parts, s) {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(m.Comment())
	}
	return strings.Join(parts, ", ")
}

// FileURL converts a local path to a file:// URI.
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// IsAudioFile reports whether the extension is one the player can decode.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac":
		return true
	}
	return false
}

// artworkNames lists sidecar artwork filenames in priority order.
var artworkNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png",
	"podcast.jpg", "podcast.png",
}

// FindArtwork looks for show artwork next to the audio file.
// Returns the path to the image, or "" if none exists.
func FindArtwork(audioPath string) string {
	dir := filepath.Dir(audioPath)
	for _, name := range artworkNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
