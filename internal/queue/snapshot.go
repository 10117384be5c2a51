package queue

import (
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/provider"
)

// Snapshot is everything needed to resume exactly where playback stopped.
type Snapshot struct {
	CurrentItem *playlist.Track   `json:"currentItem,omitempty"`
	FutureItems []playlist.Track  `json:"futureItems"`
	Provider    provider.Document `json:"provider"`
}

// Items returns the current item followed by the future items.
func (s Snapshot) Items() []playlist.Track {
	items := make([]playlist.Track, 0, len(s.FutureItems)+1)
	if s.CurrentItem != nil {
		items = append(items, *s.CurrentItem)
	}
	return append(items, s.FutureItems...)
}

// Snapshot captures the current track, the tracks queued after it and the
// encoded provider.
func (e *Engine) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := e.do(func() { s = e.snapshot() })
	return s, err
}

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{
		CurrentItem: e.player.Current(),
		FutureItems: e.player.Upcoming(),
		Provider:    provider.Encode(e.provider),
	}
	if s.FutureItems == nil {
		s.FutureItems = []playlist.Track{}
	}
	return s
}

// Restore replaces the buffer and provider with a snapshot's. The saved
// tracks are used as they are, without looking them up again. A batch is
// requested only when nothing is queued after the current track.
func (e *Engine) Restore(s Snapshot) error {
	return e.do(func() { e.restore(s) })
}

func (e *Engine) restore(s Snapshot) {
	p, err := provider.Decode(s.Provider)
	if err != nil {
		e.logger.Warn("restoring provider, using shuffle", "err", err)
	}

	e.cancelFetch()
	e.generation++
	e.provider = p
	e.player.Replace(s.Items()...)
	e.logger.Info("restored queue", "provider", p, "tracks", e.player.Len())

	if !e.player.HasNext() {
		e.request(false)
	}
}
