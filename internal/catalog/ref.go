package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RefKind is the prefix of an external item reference.
type RefKind string

const (
	RefBand     RefKind = "band"
	RefAlbum    RefKind = "album"
	RefSong     RefKind = "song"
	RefYear     RefKind = "year"
	RefDecade   RefKind = "decade"
	RefLocation RefKind = "location"
)

// ErrInvalidRef is returned for references that cannot be parsed.
var ErrInvalidRef = errors.New("catalog: invalid reference")

// Ref is an external reference to a catalog item such as "band:42" or "decade:1990".
// Catalog IDs are only unique per table, so the kind prefix is part of the identity.
type Ref struct {
	Kind RefKind
	ID   int64
}

func BandRef(id int64) Ref  { return Ref{Kind: RefBand, ID: id} }
func AlbumRef(id int64) Ref { return Ref{Kind: RefAlbum, ID: id} }
func SongRef(id int64) Ref  { return Ref{Kind: RefSong, ID: id} }

func (r Ref) String() string {
	return string(r.Kind) + ":" + strconv.FormatInt(r.ID, 10)
}

// ParseRef parses "kind:id".
func ParseRef(s string) (Ref, error) {
	kind, raw, ok := strings.Cut(s, ":")
	if !ok {
		return Ref{}, fmt.Errorf("%q: %w", s, ErrInvalidRef)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("%q: %w", s, ErrInvalidRef)
	}
	switch k := RefKind(kind); k {
	case RefBand, RefAlbum, RefSong, RefYear, RefDecade, RefLocation:
		return Ref{Kind: k, ID: id}, nil
	default:
		return Ref{}, fmt.Errorf("%q: unknown kind: %w", s, ErrInvalidRef)
	}
}
