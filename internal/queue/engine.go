// Package queue keeps the playback buffer fed from the active song provider.
//
// The Engine owns one provider at a time. It asks the provider for batches on
// a background worker, appends them to the player, trims what was played long
// ago and swaps providers when the user changes mode or a provider runs dry.
// All engine state is owned by the goroutine running Run; public methods hand
// work to that goroutine and wait for it.
package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/llehouerou/mcotp/internal/catalog"
	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/provider"
)

// ErrClosed is returned by engine methods once Run has returned.
var ErrClosed = errors.New("queue: engine closed")

// Config configures an Engine.
type Config struct {
	Batch  provider.Options
	Logger *log.Logger
}

type Engine struct {
	player  playback.Player
	sub     *playback.Subscription
	fetcher *fetcher
	logger  *log.Logger

	calls   chan func()
	results chan fetchResult
	quit    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
	running   atomic.Bool

	// Owned by the Run goroutine.
	ctx        context.Context
	provider   provider.Provider
	generation uint64
	cancel     context.CancelFunc
	inFlight   bool
}

// New creates an engine feeding player from c. Call Run to start it.
func New(c catalog.Catalog, player playback.Player, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make(chan fetchResult)
	return &Engine{
		player:   player,
		sub:      player.Subscribe(),
		fetcher:  newFetcher(c, cfg.Batch, results),
		logger:   logger,
		calls:    make(chan func()),
		results:  results,
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
		provider: provider.Shuffle(),
	}
}

// Run processes commands, fetch results and player transitions until ctx is
// done, Close is called or the player is closed.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("queue: engine already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(e.stopped)
	defer e.cancelFetch()

	e.ctx = ctx
	go e.fetcher.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quit:
			return nil
		case fn := <-e.calls:
			fn()
		case res := <-e.results:
			e.apply(res)
		case <-e.sub.TrackChanged:
			e.refill()
		case <-e.sub.Done:
			return nil
		}
	}
}

// Close stops Run and waits for it to return.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.quit) })
	if e.running.Load() {
		<-e.stopped
	}
}

// do runs fn on the Run goroutine and waits for it.
func (e *Engine) do(fn func()) error {
	done := make(chan struct{})
	select {
	case e.calls <- func() { fn(); close(done) }:
	case <-e.stopped:
		return ErrClosed
	}
	<-done
	return nil
}

// request asks the worker for the active provider's next batch.
func (e *Engine) request(playNow bool) {
	ctx, cancel := context.WithCancel(e.ctx)
	e.cancel = cancel
	e.inFlight = true

	id := uuid.NewString()
	e.logger.Debug("requesting batch",
		"request", id, "provider", e.provider, "generation", e.generation, "playNow", playNow)
	e.fetcher.submit(fetchRequest{
		ctx:        ctx,
		id:         id,
		generation: e.generation,
		provider:   e.provider,
		playNow:    playNow,
	})
}

func (e *Engine) cancelFetch() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.inFlight = false
}

// swap replaces the provider, drops everything queued after the current
// track and requests the new provider's first batch.
func (e *Engine) swap(p provider.Provider, switchNow bool) {
	e.cancelFetch()
	e.generation++
	e.provider = p
	if next := e.player.NextIndex(); next >= 0 {
		e.player.RemoveRange(next, e.player.Len())
	}
	e.logger.Info("provider changed", "provider", p, "mode", p.Mode(), "switchNow", switchNow)
	e.request(switchNow)
}

// apply appends a batch delivered by the worker. Results of a replaced
// provider are dropped.
func (e *Engine) apply(res fetchResult) {
	if res.generation != e.generation {
		e.logger.Debug("dropping stale batch",
			"request", res.id, "generation", res.generation, "current", e.generation)
		return
	}
	e.cancelFetch()
	e.provider = res.provider

	if res.err != nil && !errors.Is(res.err, context.Canceled) {
		e.logger.Error("fetching batch", "request", res.id, "provider", res.provider, "err", res.err)
	}
	if len(res.tracks) == 0 {
		if e.provider.Kind == provider.KindShuffle {
			e.logger.Warn("shuffle produced nothing; catalog empty or unavailable", "request", res.id)
			return
		}
		e.logger.Info("provider exhausted, falling back to shuffle", "provider", e.provider)
		e.swap(provider.Shuffle(), res.playNow)
		return
	}

	insertAt := e.player.Len()
	e.player.Add(res.tracks...)
	trimmed := e.trim()
	if res.playNow {
		e.player.JumpTo(insertAt - trimmed)
	}
	e.logger.Debug("batch appended",
		"request", res.id, "tracks", len(res.tracks), "trimmed", trimmed, "buffered", e.player.Len())
}

// trim drops played tracks, keeping the previous and current ones.
// Returns the number of tracks removed from the front.
func (e *Engine) trim() int {
	next := e.player.NextIndex()
	lastPlayed := next - 2
	if next < 0 || lastPlayed <= 0 {
		return 0
	}
	e.player.RemoveRange(0, lastPlayed)
	return lastPlayed
}

// refill requests a batch when the player has nothing queued after the
// current track.
func (e *Engine) refill() {
	if e.inFlight || e.player.HasNext() {
		return
	}
	e.request(false)
}

// Start begins a fresh session in shuffle mode.
func (e *Engine) Start() error {
	return e.do(func() { e.swap(provider.Shuffle(), false) })
}

// Next skips to the next buffered track.
func (e *Engine) Next() (bool, error) {
	var moved bool
	err := e.do(func() { moved = e.player.SeekToNext() })
	return moved, err
}

// Provider returns the active provider.
func (e *Engine) Provider() (provider.Provider, error) {
	var p provider.Provider
	err := e.do(func() { p = e.provider })
	return p, err
}

// Status describes the engine for display.
type Status struct {
	Mode     provider.Mode
	Label    string
	Kind     provider.Kind
	Current  *playlist.Track
	Upcoming []playlist.Track
	Fetching bool
}

func (e *Engine) Status() (Status, error) {
	var s Status
	err := e.do(func() {
		s = Status{
			Mode:     e.provider.Mode(),
			Label:    e.provider.Label(),
			Kind:     e.provider.Kind,
			Current:  e.player.Current(),
			Upcoming: e.player.Upcoming(),
			Fetching: e.inFlight,
		}
	})
	return s, err
}
