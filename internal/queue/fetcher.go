package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/llehouerou/mcotp/internal/catalog"
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/provider"
)

type fetchRequest struct {
	ctx        context.Context
	id         string
	generation uint64
	provider   provider.Provider
	playNow    bool
}

// fetchResult carries the provider value after NextBatch so the engine can
// adopt its advanced state (cleared override, completion, alternation).
type fetchResult struct {
	id         string
	generation uint64
	provider   provider.Provider
	tracks     []playlist.Track
	playNow    bool
	err        error
}

// fetcher runs every catalog query of the engine on one goroutine.
//
// It holds at most one pending request: submitting replaces a request that
// has not started yet, which can only be stale.
type fetcher struct {
	catalog catalog.Catalog
	opts    provider.Options
	results chan<- fetchResult

	mu      sync.Mutex
	pending *fetchRequest
	wake    chan struct{}
}

func newFetcher(c catalog.Catalog, opts provider.Options, results chan<- fetchResult) *fetcher {
	return &fetcher{
		catalog: c,
		opts:    opts,
		results: results,
		wake:    make(chan struct{}, 1),
	}
}

func (f *fetcher) submit(req fetchRequest) {
	f.mu.Lock()
	f.pending = &req
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *fetcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.wake:
		}

		f.mu.Lock()
		req := f.pending
		f.pending = nil
		f.mu.Unlock()
		if req == nil || req.ctx.Err() != nil {
			continue
		}

		res := f.fetch(*req)
		select {
		case f.results <- res:
		case <-ctx.Done():
			return
		}
	}
}

func (f *fetcher) fetch(req fetchRequest) fetchResult {
	res := fetchResult{
		id:         req.id,
		generation: req.generation,
		provider:   req.provider,
		playNow:    req.playNow,
	}
	songs, err := res.provider.NextBatch(req.ctx, f.catalog, f.opts)
	if err != nil {
		res.err = err
		return res
	}
	res.tracks, res.err = f.tracks(req.ctx, songs)
	return res
}

// tracks resolves display metadata. Songs whose band vanished are skipped.
func (f *fetcher) tracks(ctx context.Context, songs []catalog.Song) ([]playlist.Track, error) {
	tracks := make([]playlist.Track, 0, len(songs))
	for _, s := range songs {
		t, err := f.catalog.Track(ctx, s)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("track for song %d: %w", s.ID, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
