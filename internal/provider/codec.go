package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownProvider is reported when a document cannot be mapped to a provider.
var ErrUnknownProvider = errors.New("provider: unknown document")

// legacyKinds maps the integer tags of older documents to kinds.
var legacyKinds = map[int]Kind{
	0: KindShuffle,
	1: KindBandShuffle,
	2: KindBandSequential,
	3: KindYearRange,
	4: KindAlbumSequential,
	5: KindDoubleShot,
	6: KindBlockParty,
	7: KindLocationShuffle,
}

// Document is the persisted form of a Provider.
//
// Type holds the kind as a JSON string, or an integer for documents written
// by older versions. PartitionID and ForcedStartSongID are the legacy names of
// the album and band start song.
type Document struct {
	Type         json.RawMessage `json:"type"`
	BandID       int64           `json:"bandId,omitempty"`
	AlbumID      int64           `json:"albumId,omitempty"`
	LocationID   int64           `json:"locationId,omitempty"`
	StartYear    int             `json:"startYear,omitempty"`
	EndYear      int             `json:"endYear,omitempty"`
	StartSongID  int64           `json:"startSongId,omitempty"`
	ForcedSongID int64           `json:"forcedSongId,omitempty"`
	Completed    bool            `json:"isCompleted,omitempty"`
	BlockNext    *bool           `json:"blockNext,omitempty"`

	PartitionID       int64 `json:"partitionId,omitempty"`
	ForcedStartSongID int64 `json:"forcedStartSongId,omitempty"`

	invalid error
}

// UnmarshalJSON never fails. A malformed document is kept as an invalid
// Document that decodes to Shuffle, so a damaged provider entry does not
// discard the rest of a saved queue.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		*d = Document{invalid: err}
		return nil
	}
	*d = Document(v)
	return nil
}

// Encode returns the document of p. Only the fields of p's kind are written.
func Encode(p Provider) Document {
	d := Document{
		Type:         json.RawMessage(strconv.Quote(string(p.Kind))),
		ForcedSongID: p.ForcedSongID,
	}
	switch p.Kind {
	case KindBandShuffle:
		d.BandID = p.BandID
	case KindBandSequential:
		d.BandID = p.BandID
		d.StartSongID = p.StartSongID
		d.Completed = p.Completed
	case KindAlbumSequential:
		d.AlbumID = p.AlbumID
		d.StartSongID = p.StartSongID
		d.Completed = p.Completed
	case KindYearRange:
		d.StartYear = p.StartYear
		d.EndYear = p.EndYear
	case KindLocationShuffle:
		d.LocationID = p.LocationID
	case KindBlockParty:
		next := p.BlockNext
		d.BlockNext = &next
	case KindShuffle, KindDoubleShot:
	default:
		d.Type = json.RawMessage(strconv.Quote(string(KindShuffle)))
	}
	return d
}

// Decode rebuilds a provider from its document.
//
// Decode always returns a usable provider. When the document is malformed,
// has an unknown type or lacks a required field, the result is Shuffle and
// the error says why.
func Decode(d Document) (Provider, error) {
	if d.invalid != nil {
		return Shuffle(), fmt.Errorf("%w: %w", ErrUnknownProvider, d.invalid)
	}
	kind, err := d.kind()
	if err != nil {
		return Shuffle(), err
	}

	var p Provider
	switch kind {
	case KindShuffle:
		p = Shuffle()
	case KindBandShuffle:
		p = BandShuffle(d.BandID)
	case KindBandSequential:
		p = BandSequential(d.BandID, firstNonZero(d.StartSongID, d.ForcedStartSongID))
		p.Completed = d.Completed
	case KindAlbumSequential:
		p = AlbumSequential(d.AlbumID, firstNonZero(d.StartSongID, d.PartitionID))
		p.Completed = d.Completed
	case KindYearRange:
		p = YearRange(d.StartYear, d.EndYear)
	case KindLocationShuffle:
		p = LocationShuffle(d.LocationID)
	case KindDoubleShot:
		p = DoubleShot()
	case KindBlockParty:
		p = BlockParty()
		if d.BlockNext != nil {
			p.BlockNext = *d.BlockNext
		}
	}
	if err := p.validate(); err != nil {
		return Shuffle(), fmt.Errorf("%w: %w", ErrUnknownProvider, err)
	}
	p.ForcedSongID = d.ForcedSongID
	return p, nil
}

// DecodeJSON decodes a raw provider document. Like Decode it always returns
// a usable provider.
func DecodeJSON(data []byte) (Provider, error) {
	var d Document
	_ = json.Unmarshal(data, &d)
	return Decode(d)
}

func (d Document) kind() (Kind, error) {
	if len(d.Type) == 0 {
		return "", fmt.Errorf("%w: missing type", ErrUnknownProvider)
	}
	var name string
	if err := json.Unmarshal(d.Type, &name); err == nil {
		switch k := Kind(name); k {
		case KindShuffle, KindBandShuffle, KindBandSequential, KindAlbumSequential,
			KindYearRange, KindLocationShuffle, KindDoubleShot, KindBlockParty:
			return k, nil
		}
		return "", fmt.Errorf("%w: type %q", ErrUnknownProvider, name)
	}
	var ordinal int
	if err := json.Unmarshal(d.Type, &ordinal); err == nil {
		if k, ok := legacyKinds[ordinal]; ok {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: type %s", ErrUnknownProvider, d.Type)
}

func (p Provider) validate() error {
	switch p.Kind {
	case KindBandShuffle, KindBandSequential:
		if p.BandID == 0 {
			return fmt.Errorf("%s: missing bandId", p.Kind)
		}
	case KindAlbumSequential:
		if p.AlbumID == 0 {
			return fmt.Errorf("%s: missing albumId", p.Kind)
		}
	case KindLocationShuffle:
		if p.LocationID == 0 {
			return fmt.Errorf("%s: missing locationId", p.Kind)
		}
	case KindYearRange:
		if p.StartYear == 0 || p.EndYear < p.StartYear {
			return fmt.Errorf("%s: invalid range %d-%d", p.Kind, p.StartYear, p.EndYear)
		}
	}
	return nil
}

func firstNonZero(ids ...int64) int64 {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}
