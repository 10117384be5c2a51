package playback

import "github.com/llehouerou/mcotp/internal/playlist"

// StateChange is emitted when the play/pause state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted whenever the current item changes: when an add to
// an empty buffer makes the first item current, on SeekToNext and JumpTo,
// and when the current item is removed.
//
// The queue engine refills the buffer in response to this event.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the buffer contents change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}
