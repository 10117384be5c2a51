package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/keymap"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TrackChangedMsg:
		m.logger.Debug("track changed", "index", msg.Index, "track", trackLabel(msg.Current))
		return m, tea.Batch(m.RefreshStatus(), m.SaveQueueState(), m.WatchServiceEvents())

	case QueueChangedMsg:
		return m, tea.Batch(m.RefreshStatus(), m.SaveQueueState(), m.WatchServiceEvents())

	case StateChangedMsg:
		m.playState = msg.Current
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit

	case StatusMsg:
		m.status = msg.Status
		return m, nil

	case ActionResultMsg:
		return m.handleActionResult(msg)

	case NotificationClearMsg:
		if m.notification != nil && m.notification.ID == msg.ID {
			m.notification = nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.engine
	switch m.keys.Resolve(msg) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case keymap.ActionPlayPause:
		m.playState = m.player.Toggle()
		return m, nil
	case keymap.ActionNext:
		return m, func() tea.Msg {
			moved, err := engine.Next()
			res := ActionResultMsg{Op: errmsg.OpPlaybackNext, Err: err}
			if err == nil && !moved {
				res.Message = "Nothing queued yet"
			}
			return res
		}
	case keymap.ActionBandLock:
		return m, engineCmd(errmsg.OpModeChange, func() error { return engine.ToggleBandLock(0) })
	case keymap.ActionAlbumLock:
		return m, engineCmd(errmsg.OpModeChange, func() error { return engine.ToggleAlbumLock(0) })
	case keymap.ActionYearLock:
		return m, engineCmd(errmsg.OpModeChange, engine.ToggleYearLock)
	case keymap.ActionCycleSubMode:
		return m, engineCmd(errmsg.OpModeChange, engine.CycleSubMode)
	}
	return m, nil
}

func (m Model) handleActionResult(msg ActionResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error("engine command failed", "op", msg.Op, "err", msg.Err)
		return m, tea.Batch(m.notify(errmsg.Format(msg.Op, msg.Err), true), m.RefreshStatus())
	}
	if msg.Message != "" {
		return m, tea.Batch(m.notify(msg.Message, false), m.RefreshStatus())
	}
	return m, m.RefreshStatus()
}

// notify shows a transient message in the status line.
func (m *Model) notify(text string, isError bool) tea.Cmd {
	m.nextNotifyID++
	m.notification = &Notification{ID: m.nextNotifyID, Message: text, IsError: isError}
	return NotificationClearCmd(m.nextNotifyID)
}
