package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/queue"
)

// TrackChangedMsg is sent when the player's current track changes.
type TrackChangedMsg struct {
	Current *playlist.Track
	Index   int
}

// QueueChangedMsg is sent when the buffer contents change.
type QueueChangedMsg struct{}

// StateChangedMsg is sent when playback is paused or resumed.
type StateChangedMsg struct {
	Previous, Current playback.State
}

// ServiceClosedMsg is sent when the player is closed.
type ServiceClosedMsg struct{}

// StatusMsg carries a fresh engine status.
type StatusMsg struct {
	Status queue.Status
}

// ActionResultMsg reports the outcome of an engine command.
type ActionResultMsg struct {
	Op      errmsg.Op
	Err     error
	Message string // shown when there is no error
}

// Notification represents a temporary notification message.
type Notification struct {
	ID      int64
	Message string
	IsError bool
}

// NotificationClearMsg is sent to clear a specific notification after a delay.
type NotificationClearMsg struct {
	ID int64
}

// NotificationDuration is how long notifications are displayed.
const NotificationDuration = 3 * time.Second

// NotificationClearCmd returns a command that clears the notification after a delay.
func NotificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}
