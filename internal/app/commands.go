package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mcotp/internal/errmsg"
)

// WatchServiceEvents returns a command that waits for the next player event.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.TrackChanged:
			return TrackChangedMsg{Current: e.Current, Index: e.Index}
		case <-sub.QueueChanged:
			return QueueChangedMsg{}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// RefreshStatus returns a command that reads the engine status.
func (m Model) RefreshStatus() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		s, err := engine.Status()
		if err != nil {
			return ActionResultMsg{Op: errmsg.OpQueueLoad, Err: err}
		}
		return StatusMsg{Status: s}
	}
}

// SaveQueueState returns a command that snapshots the engine and schedules
// a debounced save.
func (m Model) SaveQueueState() tea.Cmd {
	engine, stateMgr := m.engine, m.stateMgr
	if stateMgr == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := engine.Snapshot()
		if err != nil {
			return ActionResultMsg{Op: errmsg.OpQueueSave, Err: err}
		}
		stateMgr.ScheduleSave(s)
		return nil
	}
}

// engineCmd runs an engine command off the update loop.
func engineCmd(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return ActionResultMsg{Op: op, Err: fn()}
	}
}
