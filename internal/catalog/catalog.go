// Package catalog provides read access to the song catalog: bands, albums,
// songs, release years and the optional location tree bands are attached to.
//
// The catalog is populated by an external scanner; this package only queries it.
package catalog

import (
	"context"
	"errors"

	"github.com/llehouerou/mcotp/internal/playlist"
)

// ErrNotFound is returned when a requested entity does not exist, including
// random picks from an empty scope.
var ErrNotFound = errors.New("catalog: not found")

// Song is a single playable file. AlbumID is 0 for loose songs, Year and
// TrackNumber are 0 when unknown.
type Song struct {
	ID          int64
	Name        string
	Path        string
	BandID      int64
	AlbumID     int64
	Year        int
	TrackNumber int
}

type Band struct {
	ID   int64
	Name string
	Path string
}

type Album struct {
	ID     int64
	Name   string
	Path   string
	BandID int64
	Year   int
}

// Location is a node of the geographic hierarchy. ParentID is 0 at the top level.
type Location struct {
	ID       int64
	Name     string
	ParentID int64
}

// Counts summarizes the catalog size.
type Counts struct {
	Bands  int
	Albums int
	Songs  int
}

// Catalog is the query surface the playback queue depends on.
// Implementations must be safe for concurrent use.
type Catalog interface {
	Song(ctx context.Context, id int64) (Song, error)
	RandomSong(ctx context.Context) (Song, error)
	RandomSongForBand(ctx context.Context, bandID int64) (Song, error)
	RandomSongForAlbum(ctx context.Context, albumID int64) (Song, error)
	RandomSongs(ctx context.Context, n int) ([]Song, error)
	RandomSongsForBand(ctx context.Context, bandID int64, n int) ([]Song, error)
	RandomSongsForBands(ctx context.Context, bandIDs []int64, n int) ([]Song, error)
	RandomSongsForYearRange(ctx context.Context, startYear, endYear, n int) ([]Song, error)
	RandomBand(ctx context.Context) (Band, error)
	RandomAlbum(ctx context.Context) (Album, error)

	// AlbumSongs returns an album's songs in track order.
	AlbumSongs(ctx context.Context, albumID int64) ([]Song, error)
	// BandSongs returns a band's songs in chronological order.
	BandSongs(ctx context.Context, bandID int64) ([]Song, error)

	Decades(ctx context.Context) ([]int, error)
	YearsForDecade(ctx context.Context, decade int) ([]int, error)

	// DescendantLocationIDs returns the location and all locations below it.
	DescendantLocationIDs(ctx context.Context, locationID int64) ([]int64, error)
	BandIDsForLocations(ctx context.Context, locationIDs []int64) ([]int64, error)
	// LocationLabel returns the full path of a location, e.g. "Canada/Ontario/Toronto".
	LocationLabel(ctx context.Context, locationID int64) (string, error)

	// Track resolves the display metadata of a song into a self-contained record.
	Track(ctx context.Context, song Song) (playlist.Track, error)
	Counts(ctx context.Context) (Counts, error)
}
