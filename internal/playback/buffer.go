package playback

import (
	"sync"

	"github.com/llehouerou/mcotp/internal/playlist"
)

// Verify Buffer implements Player at compile time.
var _ Player = (*Buffer)(nil)

// Buffer is an in-memory Player. It keeps the track list and position but
// produces no audio; the front-end advances it explicitly.
type Buffer struct {
	mu    sync.RWMutex
	queue *playlist.PlayingQueue
	state State

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

func NewBuffer() *Buffer {
	return &Buffer{queue: playlist.NewQueue()}
}

// Add appends tracks. When the buffer was empty, the first added track
// becomes current and starts playing.
func (b *Buffer) Add(tracks ...playlist.Track) {
	if len(tracks) == 0 {
		return
	}
	b.mu.Lock()
	became := b.queue.Add(tracks...)
	var tc TrackChange
	var sc *StateChange
	if became {
		tc = TrackChange{PreviousIndex: -1, Current: b.currentLocked(), Index: b.queue.CurrentIndex()}
		sc = b.setStateLocked(StatePlaying)
	}
	qc := b.queueChangeLocked()
	b.mu.Unlock()

	b.publishQueue(qc)
	if became {
		b.publishTrack(tc)
	}
	b.publishState(sc)
}

// RemoveRange removes tracks in [from, to). Removing the current track moves
// playback to the track that follows the removed range.
func (b *Buffer) RemoveRange(from, to int) {
	b.mu.Lock()
	prev, prevIndex := b.currentLocked(), b.queue.CurrentIndex()
	before := b.queue.Len()
	changed := b.queue.RemoveRange(from, to)
	if b.queue.Len() == before {
		b.mu.Unlock()
		return
	}
	tc := TrackChange{Previous: prev, PreviousIndex: prevIndex, Current: b.currentLocked(), Index: b.queue.CurrentIndex()}
	var sc *StateChange
	if b.queue.IsEmpty() {
		sc = b.setStateLocked(StateStopped)
	}
	qc := b.queueChangeLocked()
	b.mu.Unlock()

	b.publishQueue(qc)
	if changed {
		b.publishTrack(tc)
	}
	b.publishState(sc)
}

// Replace swaps the whole buffer for tracks, with the first one current.
func (b *Buffer) Replace(tracks ...playlist.Track) {
	b.mu.Lock()
	prev, prevIndex := b.currentLocked(), b.queue.CurrentIndex()
	b.queue.Replace(tracks...)
	tc := TrackChange{Previous: prev, PreviousIndex: prevIndex, Current: b.currentLocked(), Index: b.queue.CurrentIndex()}
	next := StateStopped
	if len(tracks) > 0 {
		next = StatePlaying
	}
	sc := b.setStateLocked(next)
	qc := b.queueChangeLocked()
	b.mu.Unlock()

	b.publishQueue(qc)
	b.publishTrack(tc)
	b.publishState(sc)
}

// SeekToNext advances to the next track. Returns false at the end of the buffer.
func (b *Buffer) SeekToNext() bool {
	b.mu.Lock()
	prev, prevIndex := b.currentLocked(), b.queue.CurrentIndex()
	if b.queue.Next() == nil {
		b.mu.Unlock()
		return false
	}
	tc := TrackChange{Previous: prev, PreviousIndex: prevIndex, Current: b.currentLocked(), Index: b.queue.CurrentIndex()}
	b.mu.Unlock()

	b.publishTrack(tc)
	return true
}

// JumpTo makes the track at index current. Returns false for an invalid index.
func (b *Buffer) JumpTo(index int) bool {
	b.mu.Lock()
	prev, prevIndex := b.currentLocked(), b.queue.CurrentIndex()
	if b.queue.JumpTo(index) == nil {
		b.mu.Unlock()
		return false
	}
	if index == prevIndex {
		b.mu.Unlock()
		return true
	}
	tc := TrackChange{Previous: prev, PreviousIndex: prevIndex, Current: b.currentLocked(), Index: index}
	b.mu.Unlock()

	b.publishTrack(tc)
	return true
}

// Current returns a copy of the current track, or nil if none.
func (b *Buffer) Current() *playlist.Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentLocked()
}

func (b *Buffer) currentLocked() *playlist.Track {
	t := b.queue.Current()
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (b *Buffer) CurrentIndex() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.CurrentIndex()
}

func (b *Buffer) NextIndex() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.NextIndex()
}

func (b *Buffer) HasNext() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.HasNext()
}

// Tracks returns a copy of all tracks in the buffer.
func (b *Buffer) Tracks() []playlist.Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.Tracks()
}

// Upcoming returns a copy of the tracks after the current one.
func (b *Buffer) Upcoming() []playlist.Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.Upcoming()
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue.Len()
}

func (b *Buffer) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Toggle switches between playing and paused. A stopped buffer stays stopped.
func (b *Buffer) Toggle() State {
	b.mu.Lock()
	var sc *StateChange
	switch b.state {
	case StatePlaying:
		sc = b.setStateLocked(StatePaused)
	case StatePaused:
		sc = b.setStateLocked(StatePlaying)
	}
	state := b.state
	b.mu.Unlock()

	b.publishState(sc)
	return state
}

func (b *Buffer) setStateLocked(s State) *StateChange {
	if b.state == s {
		return nil
	}
	sc := &StateChange{Previous: b.state, Current: s}
	b.state = s
	return sc
}

func (b *Buffer) queueChangeLocked() QueueChange {
	return QueueChange{Tracks: b.queue.Tracks(), Index: b.queue.CurrentIndex()}
}

// Subscribe creates a new event subscription.
func (b *Buffer) Subscribe() *Subscription {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	sub := newSubscription()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

func (b *Buffer) publishTrack(e TrackChange) {
	b.subsMu.RLock()
	defer b.subsMu.RUnlock()
	for _, sub := range b.subs {
		sub.sendTrack(e)
	}
}

func (b *Buffer) publishQueue(e QueueChange) {
	b.subsMu.RLock()
	defer b.subsMu.RUnlock()
	for _, sub := range b.subs {
		sub.sendQueue(e)
	}
}

func (b *Buffer) publishState(e *StateChange) {
	if e == nil {
		return
	}
	b.subsMu.RLock()
	defer b.subsMu.RUnlock()
	for _, sub := range b.subs {
		sub.sendState(*e)
	}
}

// Close ends all subscriptions.
func (b *Buffer) Close() error {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
	return nil
}
