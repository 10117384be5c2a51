package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	dbutil "github.com/llehouerou/mcotp/internal/db"
	"github.com/llehouerou/mcotp/internal/playlist"
)

// Store is the SQLite-backed Catalog.
type Store struct {
	db *sql.DB
}

// Verify Store implements Catalog at compile time.
var _ Catalog = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// songColumns selects a song together with its effective year: the album's
// year when the song is on an album that has one, the song's own otherwise.
const songColumns = `s.id, s.name, s.path, s.band_id, s.album_id, COALESCE(a.year, s.year), s.track_number`

const songFrom = `FROM song s LEFT JOIN album a ON a.id = s.album_id`

const effectiveYear = `COALESCE(a.year, s.year)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (Song, error) {
	var s Song
	var albumID, year, trackNum sql.NullInt64
	if err := row.Scan(&s.ID, &s.Name, &s.Path, &s.BandID, &albumID, &year, &trackNum); err != nil {
		return Song{}, err
	}
	s.AlbumID = dbutil.NullInt64Value(albumID)
	s.Year = int(dbutil.NullInt64Value(year))
	s.TrackNumber = int(dbutil.NullInt64Value(trackNum))
	return s, nil
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

func (s *Store) querySong(ctx context.Context, where string, args ...any) (Song, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` `+songFrom+` `+where, args...)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrNotFound
	}
	return song, err
}

func (s *Store) querySongs(ctx context.Context, where string, args ...any) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+songColumns+` `+songFrom+` `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// inClause returns "(?, ?, ?)" and the matching arguments.
func inClause(ids []int64) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	return "(" + placeholders + ")", lo.Map(ids, func(id int64, _ int) any { return id })
}

// Song returns a song by its ID.
func (s *Store) Song(ctx context.Context, id int64) (Song, error) {
	song, err := s.querySong(ctx, `WHERE s.id = ?`, id)
	if errors.Is(err, ErrNotFound) {
		return Song{}, fmt.Errorf("song %d: %w", id, ErrNotFound)
	}
	return song, err
}

// RandomSong picks a song uniformly over the whole catalog.
func (s *Store) RandomSong(ctx context.Context) (Song, error) {
	return s.querySong(ctx, `ORDER BY random() LIMIT 1`)
}

func (s *Store) RandomSongForBand(ctx context.Context, bandID int64) (Song, error) {
	return s.querySong(ctx, `WHERE s.band_id = ? ORDER BY random() LIMIT 1`, bandID)
}

func (s *Store) RandomSongForAlbum(ctx context.Context, albumID int64) (Song, error) {
	return s.querySong(ctx, `WHERE s.album_id = ? ORDER BY random() LIMIT 1`, albumID)
}

// RandomSongs returns up to n distinct random songs.
func (s *Store) RandomSongs(ctx context.Context, n int) ([]Song, error) {
	return s.querySongs(ctx, `ORDER BY random() LIMIT ?`, n)
}

func (s *Store) RandomSongsForBand(ctx context.Context, bandID int64, n int) ([]Song, error) {
	return s.querySongs(ctx, `WHERE s.band_id = ? ORDER BY random() LIMIT ?`, bandID, n)
}

// RandomSongsForBands returns up to n random songs by any of the given bands.
func (s *Store) RandomSongsForBands(ctx context.Context, bandIDs []int64, n int) ([]Song, error) {
	if len(bandIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(bandIDs)
	args = append(args, n)
	return s.querySongs(ctx, `WHERE s.band_id IN `+in+` ORDER BY random() LIMIT ?`, args...)
}

// RandomSongsForYearRange returns up to n random songs released in [startYear, endYear].
func (s *Store) RandomSongsForYearRange(ctx context.Context, startYear, endYear, n int) ([]Song, error) {
	return s.querySongs(ctx,
		`WHERE `+effectiveYear+` BETWEEN ? AND ? ORDER BY random() LIMIT ?`,
		startYear, endYear, n)
}

// RandomBand picks a band uniformly.
func (s *Store) RandomBand(ctx context.Context) (Band, error) {
	var b Band
	err := s.db.QueryRowContext(ctx, `SELECT id, name, path FROM band ORDER BY random() LIMIT 1`).
		Scan(&b.ID, &b.Name, &b.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return Band{}, ErrNotFound
	}
	return b, err
}

// RandomAlbum picks an album uniformly.
func (s *Store) RandomAlbum(ctx context.Context) (Album, error) {
	var a Album
	var year sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT id, name, path, band_id, year FROM album ORDER BY random() LIMIT 1`).
		Scan(&a.ID, &a.Name, &a.Path, &a.BandID, &year)
	if errors.Is(err, sql.ErrNoRows) {
		return Album{}, ErrNotFound
	}
	a.Year = int(dbutil.NullInt64Value(year))
	return a, err
}

// AlbumSongs returns an album's songs ordered by track number.
func (s *Store) AlbumSongs(ctx context.Context, albumID int64) ([]Song, error) {
	return s.querySongs(ctx,
		`WHERE s.album_id = ? ORDER BY (s.track_number IS NULL), s.track_number, s.name COLLATE NOCASE`,
		albumID)
}

// BandSongs returns all of a band's songs, oldest release first, in track order within an album.
// Songs without a known year come last.
func (s *Store) BandSongs(ctx context.Context, bandID int64) ([]Song, error) {
	return s.querySongs(ctx, `WHERE s.band_id = ?
		ORDER BY (`+effectiveYear+` IS NULL), `+effectiveYear+`, a.name COLLATE NOCASE, s.album_id,
			(s.track_number IS NULL), s.track_number, s.name COLLATE NOCASE`,
		bandID)
}

// Decades returns the start year of every decade with at least one dated song.
func (s *Store) Decades(ctx context.Context) ([]int, error) {
	return s.queryYears(ctx, `SELECT DISTINCT (`+effectiveYear+` / 10) * 10 AS decade `+songFrom+`
		WHERE `+effectiveYear+` > 0 ORDER BY decade`)
}

// YearsForDecade returns the distinct years present within a decade.
func (s *Store) YearsForDecade(ctx context.Context, decade int) ([]int, error) {
	return s.queryYears(ctx, `SELECT DISTINCT `+effectiveYear+` AS y `+songFrom+`
		WHERE `+effectiveYear+` BETWEEN ? AND ? ORDER BY y`, decade, decade+9)
}

func (s *Store) queryYears(ctx context.Context, query string, args ...any) ([]int, error) {
	ids, err := s.queryIDs(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return lo.Map(ids, func(y int64, _ int) int { return int(y) }), nil
}

// DescendantLocationIDs walks the location tree breadth-first from locationID.
func (s *Store) DescendantLocationIDs(ctx context.Context, locationID int64) ([]int64, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM location WHERE id = ?`, locationID).Scan(&exists)
	if err != nil {
		return nil, notFound(err, "location", locationID)
	}

	all := []int64{locationID}
	seen := map[int64]bool{locationID: true}
	frontier := []int64{locationID}
	for len(frontier) > 0 {
		in, args := inClause(frontier)
		children, err := s.queryIDs(ctx, `SELECT id FROM location WHERE parent_id IN `+in, args...)
		if err != nil {
			return nil, err
		}
		// Damaged data can contain parent cycles.
		frontier = lo.Filter(children, func(id int64, _ int) bool {
			if seen[id] {
				return false
			}
			seen[id] = true
			return true
		})
		all = append(all, frontier...)
	}
	return all, nil
}

// BandIDsForLocations returns the distinct bands attached to any of the locations.
func (s *Store) BandIDsForLocations(ctx context.Context, locationIDs []int64) ([]int64, error) {
	if len(locationIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(locationIDs)
	return s.queryIDs(ctx,
		`SELECT DISTINCT band_id FROM band_location WHERE location_id IN `+in+` ORDER BY band_id`,
		args...)
}

// LocationLabel builds the "Parent/Child" path of a location.
func (s *Store) LocationLabel(ctx context.Context, locationID int64) (string, error) {
	var parts []string
	id := locationID
	for id != 0 {
		var name string
		var parent sql.NullInt64
		err := s.db.QueryRowContext(ctx, `SELECT name, parent_id FROM location WHERE id = ?`, id).
			Scan(&name, &parent)
		if err != nil {
			return "", notFound(err, "location", id)
		}
		parts = append(parts, name)
		id = dbutil.NullInt64Value(parent)
		if len(parts) > 64 {
			return "", fmt.Errorf("location %d: parent cycle", locationID)
		}
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/"), nil
}

// Track resolves the band and album names of a song.
func (s *Store) Track(ctx context.Context, song Song) (playlist.Track, error) {
	var bandName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM band WHERE id = ?`, song.BandID).Scan(&bandName)
	if err != nil {
		return playlist.Track{}, notFound(err, "band", song.BandID)
	}

	var albumName string
	if song.AlbumID != 0 {
		err := s.db.QueryRowContext(ctx, `SELECT name FROM album WHERE id = ?`, song.AlbumID).Scan(&albumName)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return playlist.Track{}, err
		}
	}

	return playlist.Track{
		MediaID:      SongRef(song.ID).String(),
		SongID:       song.ID,
		BandID:       song.BandID,
		AlbumID:      song.AlbumID,
		Artist:       bandName,
		Title:        song.Name,
		DisplayTitle: song.Name,
		Album:        albumName,
		TrackNumber:  song.TrackNumber,
		Year:         song.Year,
		Path:         song.Path,
	}, nil
}

// Counts returns the number of bands, albums and songs.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM band), (SELECT COUNT(*) FROM album), (SELECT COUNT(*) FROM song)
	`).Scan(&c.Bands, &c.Albums, &c.Songs)
	return c, err
}
