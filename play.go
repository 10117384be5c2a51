package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/mcotp/internal/app"
	"github.com/llehouerou/mcotp/internal/catalog"
	dbutil "github.com/llehouerou/mcotp/internal/db"
	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/logging"
	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/queue"
	"github.com/llehouerou/mcotp/internal/state"
)

// Play runs the terminal player. Logs go to a file so they do not draw over
// the interface.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	logPath, err := logging.FilePath()
	if err != nil {
		return errmsg.Error(errmsg.OpLogFileOpen, err)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return errmsg.Error(errmsg.OpLogFileOpen, err)
	}
	defer logFile.Close()
	logger := logging.NewLogger(logFile, r.config.LogLevel)

	catalogDB, err := dbutil.Open(r.config.CatalogDB, true)
	if err != nil {
		return errmsg.Error(errmsg.OpCatalogOpen, err)
	}
	defer catalogDB.Close()

	stateMgr, err := state.Open(r.config.StateDB, logger.WithPrefix("state"))
	if err != nil {
		return errmsg.Error(errmsg.OpStateOpen, err)
	}
	defer stateMgr.Close()

	player := playback.NewBuffer()
	defer player.Close()

	engine := queue.New(catalog.New(catalogDB), player, queue.Config{
		Batch:  r.config.BatchOptions(),
		Logger: logger.WithPrefix("queue"),
	})
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := engine.Run(ctx); err != nil {
			logger.Error("queue engine stopped", "err", err)
		}
	}()
	defer engine.Close()

	if err := resume(engine, stateMgr, logger); err != nil {
		return errmsg.Error(errmsg.OpPlaybackStart, err)
	}
	if item := cmd.String("item"); item != "" {
		if err := engine.ForcePlay(item); err != nil {
			return errmsg.Error(errmsg.OpForcePlay, err)
		}
	}

	model := app.New(engine, player, stateMgr, app.Options{
		Upcoming: r.config.GetQueueConfig().Upcoming,
		Logger:   logger.WithPrefix("app"),
	})
	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	// Persist the exact position before the engine and state store close.
	if s, err := engine.Snapshot(); err == nil {
		if err := stateMgr.SaveSnapshot(s); err != nil {
			logger.Error(errmsg.Format(errmsg.OpQueueSave, err))
		}
	}
	return runErr
}

// resume restores the saved queue, or starts a fresh shuffle when nothing
// usable was saved.
func resume(engine *queue.Engine, stateMgr state.Interface, logger *log.Logger) error {
	saved, err := stateMgr.GetSnapshot()
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpQueueLoad, err))
		saved = nil
	}
	if saved == nil || len(saved.Snapshot.Items()) == 0 {
		logger.Info("starting fresh session")
		return engine.Start()
	}
	logger.Info("resuming saved queue",
		"savedAt", saved.SavedAt, "tracks", len(saved.Snapshot.Items()))
	return engine.Restore(saved.Snapshot)
}
