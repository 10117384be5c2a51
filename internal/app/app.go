// Package app is the terminal front-end: it shows the current mode, the
// playing track and what comes next, and maps keys to queue commands.
package app

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/mcotp/internal/keymap"
	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/queue"
	"github.com/llehouerou/mcotp/internal/state"
)

// Engine is the part of the queue engine the front-end drives.
type Engine interface {
	Next() (bool, error)
	ToggleBandLock(forcedBandID int64) error
	ToggleAlbumLock(forcedAlbumID int64) error
	ToggleYearLock() error
	CycleSubMode() error
	Status() (queue.Status, error)
	Snapshot() (queue.Snapshot, error)
}

var _ Engine = (*queue.Engine)(nil)

// Options configures the front-end.
type Options struct {
	Upcoming int // upcoming tracks shown
	Logger   *log.Logger
}

// Model is the root application model.
type Model struct {
	engine   Engine
	player   playback.Player
	sub      *playback.Subscription
	stateMgr state.Interface
	logger   *log.Logger

	keys *keymap.Resolver
	help help.Model

	upcoming     int
	status       queue.Status
	playState    playback.State
	notification *Notification
	nextNotifyID int64

	width  int
	height int
}

// New creates the front-end model. It subscribes to player events right
// away so none are missed before the program starts.
func New(engine Engine, player playback.Player, stateMgr state.Interface, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	upcoming := opts.Upcoming
	if upcoming <= 0 {
		upcoming = 5
	}
	return Model{
		engine:    engine,
		player:    player,
		sub:       player.Subscribe(),
		stateMgr:  stateMgr,
		logger:    logger,
		keys:      keymap.NewResolver(keymap.All),
		help:      help.New(),
		upcoming:  upcoming,
		playState: player.State(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), m.RefreshStatus())
}
