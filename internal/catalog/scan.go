package catalog

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/episode"
)

// ScanFailure records a file that could not be added.
type ScanFailure struct {
	Path string
	Err  error
}

// ScanReport summarizes a Scan.
type ScanReport struct {
	Added     int
	Updated   int
	Unchanged int
	Failed    []ScanFailure
}

// Total returns the number of audio files seen.
func (r ScanReport) Total() int {
	return r.Added + r.Updated + r.Unchanged + len(r.Failed)
}

// Scan walks dirs and upserts every mp3/flac file whose modification time
// differs from the stored one. Per-file errors are collected in the report;
// an unreadable root directory or a cancelled context aborts the scan.
func (c *Catalog) Scan(ctx context.Context, dirs []string, probe episode.DurationProbe) (ScanReport, error) {
	var report ScanReport

	known, err := c.modTimes(ctx)
	if err != nil {
		return report, errors.Wrap(err, "load known episodes")
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				if path == dir {
					return walkErr
				}
				report.Failed = append(report.Failed, ScanFailure{Path: path, Err: walkErr})
				return nil
			}
			if d.IsDir() || !episode.IsAudioFile(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				report.Failed = append(report.Failed, ScanFailure{Path: path, Err: err})
				return nil
			}
			mtime := info.ModTime()
			if prev, ok := known[episode.FileURL(path)]; ok && prev == mtime.Unix() {
				report.Unchanged++
				return nil
			}

			ep, err := episode.FromFile(path, probe)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skip episode")
				report.Failed = append(report.Failed, ScanFailure{Path: path, Err: err})
				return nil
			}
			added, err := c.Upsert(ctx, ep, mtime)
			if err != nil {
				return err
			}
			if added {
				report.Added++
			} else {
				report.Updated++
			}
			return nil
		})
		if err != nil {
			return report, errors.Wrapf(err, "scan %s", dir)
		}
	}

	log.Info().
		Int("added", report.Added).
		Int("updated", report.Updated).
		Int("unchanged", report.Unchanged).
		Int("failed", len(report.Failed)).
		Msg("catalog scan finished")
	return report, nil
}
