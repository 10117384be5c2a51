// Package catalogtest provides an in-memory catalog seeded with a small,
// fixed collection for tests.
package catalogtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mcotp/internal/catalog"
	dbutil "github.com/llehouerou/mcotp/internal/db"
)

// Fixture IDs.
//
// Alpha has two dated albums and one loose song, Beta one album of six
// tracks, Gamma two undated-album loose songs.
const (
	BandAlpha int64 = 1
	BandBeta  int64 = 2
	BandGamma int64 = 3

	AlbumFirst  int64 = 10 // Alpha, 1994, songs 100-103
	AlbumSecond int64 = 11 // Alpha, 1996, songs 110-112
	AlbumOnly   int64 = 20 // Beta, 1985, songs 200-205

	LocationCanada  int64 = 1
	LocationOntario int64 = 2 // in Canada
	LocationToronto int64 = 3 // in Ontario, home of Alpha
	LocationFrance  int64 = 4 // home of Gamma
)

// FirstSongs is the track order of AlbumFirst.
var FirstSongs = []int64{100, 101, 102, 103}

// AlphaSongs is Alpha's chronological order: 1994 album, 1996 album, 1999 loose song.
var AlphaSongs = []int64{100, 101, 102, 103, 110, 111, 112, 120}

// BetaSongs is the track order of AlbumOnly.
var BetaSongs = []int64{200, 201, 202, 203, 204, 205}

// GammaSongs are Gamma's loose songs, both from 2003.
var GammaSongs = []int64{300, 301}

const seed = `
	INSERT INTO band (id, name, path) VALUES
		(1, 'Alpha', '/music/Alpha'),
		(2, 'Beta', '/music/Beta'),
		(3, 'Gamma', '/music/Gamma');

	INSERT INTO album (id, name, path, band_id, year) VALUES
		(10, 'First', '/music/Alpha/1994 - First', 1, 1994),
		(11, 'Second', '/music/Alpha/1996 - Second', 1, 1996),
		(20, 'Only', '/music/Beta/1985 - Only', 2, 1985);

	INSERT INTO song (id, name, path, band_id, album_id, year, track_number) VALUES
		(100, 'One', '/music/Alpha/1994 - First/01 One.mp3', 1, 10, NULL, 1),
		(101, 'Two', '/music/Alpha/1994 - First/02 Two.mp3', 1, 10, NULL, 2),
		(102, 'Three', '/music/Alpha/1994 - First/03 Three.mp3', 1, 10, NULL, 3),
		(103, 'Four', '/music/Alpha/1994 - First/04 Four.mp3', 1, 10, NULL, 4),
		(110, 'Uno', '/music/Alpha/1996 - Second/01 Uno.mp3', 1, 11, NULL, 1),
		(111, 'Dos', '/music/Alpha/1996 - Second/02 Dos.mp3', 1, 11, NULL, 2),
		(112, 'Tres', '/music/Alpha/1996 - Second/03 Tres.mp3', 1, 11, NULL, 3),
		(120, 'Loose', '/music/Alpha/Loose.mp3', 1, NULL, 1999, NULL),
		(200, 'B1', '/music/Beta/1985 - Only/01.mp3', 2, 20, NULL, 1),
		(201, 'B2', '/music/Beta/1985 - Only/02.mp3', 2, 20, NULL, 2),
		(202, 'B3', '/music/Beta/1985 - Only/03.mp3', 2, 20, NULL, 3),
		(203, 'B4', '/music/Beta/1985 - Only/04.mp3', 2, 20, NULL, 4),
		(204, 'B5', '/music/Beta/1985 - Only/05.mp3', 2, 20, NULL, 5),
		(205, 'B6', '/music/Beta/1985 - Only/06.mp3', 2, 20, NULL, 6),
		(300, 'G1', '/music/Gamma/G1.mp3', 3, NULL, 2003, NULL),
		(301, 'G2', '/music/Gamma/G2.mp3', 3, NULL, 2003, NULL);

	INSERT INTO location (id, name, parent_id) VALUES
		(1, 'Canada', NULL),
		(2, 'Ontario', 1),
		(3, 'Toronto', 2),
		(4, 'France', NULL);

	INSERT INTO band_location (band_id, location_id) VALUES
		(1, 3),
		(3, 4);
`

// OpenDB returns an in-memory database with the catalog schema and no rows.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbutil.Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, catalog.InitSchema(context.Background(), db))
	return db
}

// Empty returns a catalog with the schema but no content.
func Empty(t *testing.T) *catalog.Store {
	t.Helper()
	return catalog.New(OpenDB(t))
}

// Seed inserts the fixture collection into a database that already has the
// catalog schema.
func Seed(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(seed)
	require.NoError(t, err)
}

// New returns the seeded catalog.
func New(t *testing.T) *catalog.Store {
	t.Helper()
	db := OpenDB(t)
	Seed(t, db)
	return catalog.New(db)
}

// IDs extracts song IDs in order.
func IDs(songs []catalog.Song) []int64 {
	ids := make([]int64, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}
