// Package provider implements the song providers that feed the play queue.
//
// A Provider is a tagged value: Kind selects the batch policy and the other
// fields carry that policy's parameters. Providers are plain values so they can
// be copied to the fetch worker and handed back once a batch is produced.
package provider

import (
	"fmt"
	"strconv"
)

// Kind identifies a provider variant. The value is also the persisted tag.
type Kind string

const (
	KindShuffle         Kind = "shuffle"
	KindBandShuffle     Kind = "band_shuffle"
	KindBandSequential  Kind = "band_sequential"
	KindAlbumSequential Kind = "album_sequential"
	KindYearRange       Kind = "year_range"
	KindLocationShuffle Kind = "location_shuffle"
	KindDoubleShot      Kind = "double_shot"
	KindBlockParty      Kind = "block_party"
)

// Mode is the major listening mode shown to the user.
type Mode int

const (
	ModeCollection Mode = iota
	ModeBand
	ModeAlbum
	ModeYear
	ModeLocation
)

func (m Mode) String() string {
	switch m {
	case ModeBand:
		return "Band"
	case ModeAlbum:
		return "Album"
	case ModeYear:
		return "Year"
	case ModeLocation:
		return "Location"
	default:
		return "Collection"
	}
}

// Provider is the state of a song provider.
//
// Each kind reads only the fields its constructor sets. StartSongID rotates a
// sequential pass so that it resumes after that song. ForcedSongID, when set,
// is returned alone by the next batch and then cleared.
type Provider struct {
	Kind         Kind
	BandID       int64
	AlbumID      int64
	LocationID   int64
	StartYear    int
	EndYear      int
	StartSongID  int64
	ForcedSongID int64
	Completed    bool
	BlockNext    bool

	scope *locationScope
}

// locationScope is the resolved band set of a location shuffle.
type locationScope struct {
	bandIDs []int64
	label   string
}

func Shuffle() Provider { return Provider{Kind: KindShuffle} }

func BandShuffle(bandID int64) Provider {
	return Provider{Kind: KindBandShuffle, BandID: bandID}
}

// BandSequential plays every song of a band once, in release order.
// A non-zero startSongID starts the pass right after that song.
func BandSequential(bandID, startSongID int64) Provider {
	return Provider{Kind: KindBandSequential, BandID: bandID, StartSongID: startSongID}
}

// AlbumSequential plays an album once in track order.
// A non-zero startSongID starts the pass right after that song.
func AlbumSequential(albumID, startSongID int64) Provider {
	return Provider{Kind: KindAlbumSequential, AlbumID: albumID, StartSongID: startSongID}
}

func YearRange(startYear, endYear int) Provider {
	return Provider{Kind: KindYearRange, StartYear: startYear, EndYear: endYear}
}

// Decade covers the ten years starting at startYear.
func Decade(startYear int) Provider { return YearRange(startYear, startYear+9) }

func Year(year int) Provider { return YearRange(year, year) }

func LocationShuffle(locationID int64) Provider {
	return Provider{Kind: KindLocationShuffle, LocationID: locationID}
}

func DoubleShot() Provider { return Provider{Kind: KindDoubleShot} }

// BlockParty starts with a single-band block.
func BlockParty() Provider { return Provider{Kind: KindBlockParty, BlockNext: true} }

// WithForcedSong returns a copy of p whose next batch is exactly songID.
func (p Provider) WithForcedSong(songID int64) Provider {
	p.ForcedSongID = songID
	return p
}

// Mode derives the major mode from the kind.
func (p Provider) Mode() Mode {
	switch p.Kind {
	case KindBandShuffle, KindBandSequential:
		return ModeBand
	case KindAlbumSequential:
		return ModeAlbum
	case KindYearRange:
		return ModeYear
	case KindLocationShuffle:
		return ModeLocation
	default:
		return ModeCollection
	}
}

// Label is the sub-mode text shown next to the major mode. Empty when the
// mode has no sub-mode.
func (p Provider) Label() string {
	switch p.Kind {
	case KindDoubleShot:
		return "Double-Shot Weekend"
	case KindBlockParty:
		return "Block Party Weekend"
	case KindBandSequential:
		return "Sequential Mode"
	case KindLocationShuffle:
		if p.scope != nil && p.scope.label != "" {
			return p.scope.label
		}
		return "Location Lock"
	case KindYearRange:
		return YearLabel(p.StartYear, p.EndYear)
	default:
		return ""
	}
}

// YearLabel formats a year range: "1994", "1990s" or "1985-1992".
func YearLabel(start, end int) string {
	switch {
	case start == end:
		return strconv.Itoa(start)
	case start%10 == 0 && end == start+9:
		return strconv.Itoa(start) + "s"
	default:
		return fmt.Sprintf("%d-%d", start, end)
	}
}

func (p Provider) String() string {
	switch p.Kind {
	case KindBandShuffle:
		return fmt.Sprintf("%s(band=%d)", p.Kind, p.BandID)
	case KindBandSequential:
		return fmt.Sprintf("%s(band=%d, start=%d, done=%t)", p.Kind, p.BandID, p.StartSongID, p.Completed)
	case KindAlbumSequential:
		return fmt.Sprintf("%s(album=%d, start=%d, done=%t)", p.Kind, p.AlbumID, p.StartSongID, p.Completed)
	case KindYearRange:
		return fmt.Sprintf("%s(%d-%d)", p.Kind, p.StartYear, p.EndYear)
	case KindLocationShuffle:
		return fmt.Sprintf("%s(location=%d)", p.Kind, p.LocationID)
	default:
		return string(p.Kind)
	}
}
