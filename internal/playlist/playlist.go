package playlist

// Track is a self-contained, display-ready song record. It carries everything
// the playback engine and a restarted process need, so it can be persisted and
// replayed without a catalog lookup.
type Track struct {
	MediaID      string `json:"mediaId"` // external reference, "song:<id>"
	SongID       int64  `json:"songId"`
	BandID       int64  `json:"bandId"`
	AlbumID      int64  `json:"albumId,omitempty"`
	Artist       string `json:"artistName"`
	Title        string `json:"songTitle"`
	DisplayTitle string `json:"songDisplayTitle"`
	Album        string `json:"albumTitle,omitempty"`
	TrackNumber  int    `json:"trackNumber"`
	Year         int    `json:"releaseYear"`
	Path         string `json:"uri"`
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// RemoveRange removes tracks in [from, to). Bounds are clamped.
// Returns the number of removed tracks.
func (p *Playlist) RemoveRange(from, to int) int {
	from = max(from, 0)
	to = min(to, len(p.tracks))
	if from >= to {
		return 0
	}
	p.tracks = append(p.tracks[:from], p.tracks[to:]...)
	return to - from
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
