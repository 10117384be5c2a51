package playlist

// PlayingQueue wraps a Playlist with playback position.
//
// It behaves like the buffer of a streaming player: adding to an empty queue
// makes the first added track current, and removing played tracks shifts the
// position so the current track never changes as a side effect.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing playing
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// NextIndex returns the index of the track after the current one, or -1.
func (q *PlayingQueue) NextIndex() int {
	if !q.HasNext() {
		return -1
	}
	return q.currentIndex + 1
}

// Next advances to the next track and returns it.
// Returns nil if there is no next track.
func (q *PlayingQueue) Next() *Track {
	if !q.HasNext() {
		return nil
	}
	q.currentIndex++
	return q.Current()
}

// HasNext returns true if there's a track after the current one.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex >= 0 && q.currentIndex < q.playlist.Len()-1
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends tracks to the queue. If the queue was empty, the first added
// track becomes current. Returns true when the current track changed.
func (q *PlayingQueue) Add(tracks ...Track) bool {
	if len(tracks) == 0 {
		return false
	}
	wasEmpty := q.currentIndex < 0
	q.playlist.Add(tracks...)
	if wasEmpty {
		q.currentIndex = 0
	}
	return wasEmpty
}

// Replace clears the queue, adds tracks, and sets index to 0.
// Returns the first track to play.
func (q *PlayingQueue) Replace(tracks ...Track) *Track {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(tracks) == 0 {
		return nil
	}
	q.playlist.Add(tracks...)
	q.currentIndex = 0
	return q.Current()
}

// RemoveRange removes tracks in [from, to) and keeps the current index on
// the same track. If the current track itself is removed, the position moves
// to the first track after the removed range (clamped to the end).
// Returns true when the current track changed.
func (q *PlayingQueue) RemoveRange(from, to int) bool {
	from = max(from, 0)
	to = min(to, q.playlist.Len())
	removed := q.playlist.RemoveRange(from, to)
	if removed == 0 {
		return false
	}

	switch {
	case q.currentIndex >= to:
		q.currentIndex -= removed
		return false
	case q.currentIndex >= from:
		q.currentIndex = min(from, q.playlist.Len()-1)
		return true
	default:
		return false
	}
}

// Clear removes all tracks and resets playback.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Upcoming returns the tracks after the current one.
func (q *PlayingQueue) Upcoming() []Track {
	tracks := q.playlist.Tracks()
	if q.currentIndex < 0 {
		return tracks
	}
	return tracks[q.currentIndex+1:]
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
