// Package playback is the boundary between the queue engine and whatever
// actually plays audio.
package playback

import "github.com/llehouerou/mcotp/internal/playlist"

// Player is the playback engine as seen by the queue engine: an ordered
// buffer of tracks with a current position.
//
// Adding to an empty player makes the first added track current. Every
// change of the current track is published as a TrackChange.
type Player interface {
	// Buffer manipulation
	Add(tracks ...playlist.Track)
	RemoveRange(from, to int)
	Replace(tracks ...playlist.Track)

	// Navigation
	SeekToNext() bool
	JumpTo(index int) bool

	// Buffer queries
	Current() *playlist.Track
	CurrentIndex() int
	NextIndex() int // -1 when there is no next track
	HasNext() bool
	Tracks() []playlist.Track
	Upcoming() []playlist.Track
	Len() int

	// Transport
	State() State
	Toggle() State

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// State is the transport state of the player.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
