// Package catalog stores the episodes known to podwaves in SQLite and fills
// itself by scanning local podcast folders.
package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	dbutil "github.com/llehouerou/podwaves/internal/db"
	"github.com/llehouerou/podwaves/internal/episode"
)

const (
	appName    = "podwaves"
	dbFileName = "podwaves.db"
)

// ErrNotFound is returned when no episode has the requested URL.
var ErrNotFound = errors.New("episode not found")

// Entry is a catalog row: an episode plus bookkeeping.
type Entry struct {
	episode.Episode
	ModTime time.Time
	AddedAt time.Time
}

// Catalog is the SQLite-backed episode store.
type Catalog struct {
	db *sql.DB
}

// DefaultPath returns $XDG_DATA_HOME/podwaves/podwaves.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// OpenDefault opens the catalog at DefaultPath.
func OpenDefault() (*Catalog, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve catalog path")
	}
	return Open(path)
}

// Open opens the catalog at path, creating the schema when needed.
func Open(path string) (*Catalog, error) {
	sqlDB, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "init catalog schema")
	}
	return &Catalog{db: sqlDB}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert inserts ep or updates the row with the same URL.
// It reports whether a new row was created.
func (c *Catalog) Upsert(ctx context.Context, ep episode.Episode, modTime time.Time) (bool, error) {
	if err := ep.Validate(); err != nil {
		return false, err
	}

	var added bool
	err := dbutil.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM episodes WHERE url = ?`, ep.URL).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			added = true
		case err != nil:
			return err
		}

		now := time.Now().Unix()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO episodes (url, title, members, thumbnail, duration, mtime, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				title = excluded.title,
				members = excluded.members,
				thumbnail = excluded.thumbnail,
				duration = excluded.duration,
				mtime = excluded.mtime,
				updated_at = excluded.updated_at
		`, ep.URL, ep.Title, ep.Members, ep.Thumbnail, ep.Duration, modTime.Unix(), now, now)
		return err
	})
	if err != nil {
		return false, errors.Wrapf(err, "upsert %s", ep.URL)
	}
	return added, nil
}

// Remove deletes the episode with the given URL.
func (c *Catalog) Remove(ctx context.Context, url string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM episodes WHERE url = ?`, url)
	if err != nil {
		return errors.Wrapf(err, "remove %s", url)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "remove %s", url)
	}
	return nil
}

// Get returns the entry for url.
func (c *Catalog) Get(ctx context.Context, url string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, selectEntries+` WHERE url = ?`, url)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, errors.Wrapf(ErrNotFound, "get %s", url)
	}
	if err != nil {
		return Entry{}, errors.Wrapf(err, "get %s", url)
	}
	return e, nil
}

// List returns every entry ordered by title.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, selectEntries+` ORDER BY title COLLATE NOCASE, url`)
	if err != nil {
		return nil, errors.Wrap(err, "list episodes")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan episode row")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "list episodes")
}

// Episodes returns the episodes of List in the same order.
func (c *Catalog) Episodes(ctx context.Context) ([]episode.Episode, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]episode.Episode, len(entries))
	for i, e := range entries {
		out[i] = e.Episode
	}
	return out, nil
}

// Count returns the number of stored episodes.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&n)
	return n, errors.Wrap(err, "count episodes")
}

// modTimes returns the stored mtime per URL for change detection.
func (c *Catalog) modTimes(ctx context.Context) (map[string]int64, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT url, mtime FROM episodes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var url string
		var mtime int64
		if err := rows.Scan(&url, &mtime); err != nil {
			return nil, err
		}
		out[url] = mtime
	}
	return out, rows.Err()
}

const selectEntries = `
	SELECT url, title, members, thumbnail, duration, mtime, added_at
	FROM episodes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var (
		e                 Entry
		members, thumb    sql.NullString
		duration          sql.NullInt64
		mtime, addedAtSec int64
	)
	if err := r.Scan(&e.URL, &e.Title, &members, &thumb, &duration, &mtime, &addedAtSec); err != nil {
		return Entry{}, err
	}
	e.Members = dbutil.NullStringValue(members)
	e.Thumbnail = dbutil.NullStringValue(thumb)
	e.Duration = int(dbutil.NullInt64Value(duration))
	e.ModTime = time.Unix(mtime, 0)
	e.AddedAt = time.Unix(addedAtSec, 0)
	return e, nil
}
