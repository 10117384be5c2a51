package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/llehouerou/mcotp/internal/catalog"
)

// Options sizes the batches a provider produces.
type Options struct {
	BatchSize     int // songs per shuffle-style batch
	BlockSize     int // songs per block party block
	BlockAttempts int // bands tried for a full block party band block
}

// DefaultOptions returns the standard batch sizes.
func DefaultOptions() Options {
	return Options{BatchSize: 10, BlockSize: 5, BlockAttempts: 5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BatchSize <= 0 {
		o.BatchSize = d.BatchSize
	}
	if o.BlockSize <= 0 {
		o.BlockSize = d.BlockSize
	}
	if o.BlockAttempts <= 0 {
		o.BlockAttempts = d.BlockAttempts
	}
	return o
}

// technique picks how a shuffle slot is filled: 0 album-weighted,
// 1 band-weighted, 2 and 3 unweighted.
var technique = func() int {
	return rand.IntN(4) //nolint:gosec // not security-sensitive
}

// NextBatch returns the next songs to queue and advances p.
//
// An empty batch means the provider has nothing more to give. Catalog entities
// that no longer exist yield an empty batch rather than an error; only
// failures of the catalog itself are returned.
func (p *Provider) NextBatch(ctx context.Context, c catalog.Catalog, opts Options) ([]catalog.Song, error) {
	opts = opts.withDefaults()

	if p.ForcedSongID != 0 {
		id := p.ForcedSongID
		p.ForcedSongID = 0
		song, err := c.Song(ctx, id)
		switch {
		case err == nil:
			return []catalog.Song{song}, nil
		case !errors.Is(err, catalog.ErrNotFound):
			return nil, fmt.Errorf("forced song %d: %w", id, err)
		}
	}

	var songs []catalog.Song
	var err error
	switch p.Kind {
	case KindBandShuffle:
		songs, err = c.RandomSongsForBand(ctx, p.BandID, opts.BatchSize)
	case KindBandSequential:
		songs, err = p.sequential(ctx, func(ctx context.Context) ([]catalog.Song, error) {
			return c.BandSongs(ctx, p.BandID)
		})
	case KindAlbumSequential:
		songs, err = p.sequential(ctx, func(ctx context.Context) ([]catalog.Song, error) {
			return c.AlbumSongs(ctx, p.AlbumID)
		})
	case KindYearRange:
		songs, err = c.RandomSongsForYearRange(ctx, p.StartYear, p.EndYear, opts.BatchSize)
	case KindLocationShuffle:
		songs, err = p.locationBatch(ctx, c, opts.BatchSize)
	case KindDoubleShot:
		songs, err = doubleShot(ctx, c)
	case KindBlockParty:
		songs, err = p.blockParty(ctx, c, opts)
	default:
		songs, err = shuffle(ctx, c, opts.BatchSize)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Kind, err)
	}
	return songs, nil
}

func shuffle(ctx context.Context, c catalog.Catalog, n int) ([]catalog.Song, error) {
	songs := make([]catalog.Song, 0, n)
	for range n {
		song, err := shufflePick(ctx, c)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// shufflePick fills one shuffle slot. A weighted pick that lands on an empty
// album or band falls back to an unweighted pick.
func shufflePick(ctx context.Context, c catalog.Catalog) (catalog.Song, error) {
	var song catalog.Song
	var err error
	switch technique() {
	case 0:
		var album catalog.Album
		if album, err = c.RandomAlbum(ctx); err == nil {
			song, err = c.RandomSongForAlbum(ctx, album.ID)
		}
	case 1:
		var band catalog.Band
		if band, err = c.RandomBand(ctx); err == nil {
			song, err = c.RandomSongForBand(ctx, band.ID)
		}
	default:
		return c.RandomSong(ctx)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return c.RandomSong(ctx)
	}
	return song, err
}

// sequential returns the full list once, rotated after StartSongID, and
// nothing afterwards.
func (p *Provider) sequential(
	ctx context.Context,
	list func(context.Context) ([]catalog.Song, error),
) ([]catalog.Song, error) {
	if p.Completed {
		return nil, nil
	}
	songs, err := list(ctx)
	if err != nil {
		return nil, err
	}
	p.Completed = true
	return rotate(songs, p.StartSongID), nil
}

// rotate returns the songs after startID followed by the songs up to and
// including it. The list is returned unchanged when startID is not in it.
func rotate(songs []catalog.Song, startID int64) []catalog.Song {
	if startID == 0 {
		return songs
	}
	for i, s := range songs {
		if s.ID != startID {
			continue
		}
		out := make([]catalog.Song, 0, len(songs))
		out = append(out, songs[i+1:]...)
		return append(out, songs[:i+1]...)
	}
	return songs
}

func (p *Provider) locationBatch(ctx context.Context, c catalog.Catalog, n int) ([]catalog.Song, error) {
	if p.scope == nil {
		scope, err := resolveLocation(ctx, c, p.LocationID)
		if err != nil {
			return nil, err
		}
		p.scope = scope
	}
	return c.RandomSongsForBands(ctx, p.scope.bandIDs, n)
}

func resolveLocation(ctx context.Context, c catalog.Catalog, locationID int64) (*locationScope, error) {
	ids, err := c.DescendantLocationIDs(ctx, locationID)
	if err != nil {
		return nil, err
	}
	bands, err := c.BandIDsForLocations(ctx, ids)
	if err != nil {
		return nil, err
	}
	label, err := c.LocationLabel(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return &locationScope{bandIDs: bands, label: label}, nil
}

func doubleShot(ctx context.Context, c catalog.Catalog) ([]catalog.Song, error) {
	band, err := c.RandomBand(ctx)
	if err != nil {
		return nil, err
	}
	return c.RandomSongsForBand(ctx, band.ID, 2)
}

// blockParty alternates a block from a single band with a mixed block.
func (p *Provider) blockParty(ctx context.Context, c catalog.Catalog, opts Options) ([]catalog.Song, error) {
	var songs []catalog.Song
	var err error
	if p.BlockNext {
		songs, err = bandBlock(ctx, c, opts.BlockSize, opts.BlockAttempts)
	} else {
		songs, err = c.RandomSongs(ctx, opts.BlockSize)
	}
	if err != nil {
		return nil, err
	}
	p.BlockNext = !p.BlockNext
	return songs, nil
}

// bandBlock looks for a random band with at least size songs. The last
// attempt is accepted whatever its length.
func bandBlock(ctx context.Context, c catalog.Catalog, size, attempts int) ([]catalog.Song, error) {
	var songs []catalog.Song
	for range attempts {
		band, err := c.RandomBand(ctx)
		if err != nil {
			return nil, err
		}
		songs, err = c.RandomSongsForBand(ctx, band.ID, size)
		if err != nil {
			return nil, err
		}
		if len(songs) >= size {
			break
		}
	}
	return songs, nil
}
