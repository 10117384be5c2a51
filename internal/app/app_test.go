package app

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/playback"
	"github.com/llehouerou/mcotp/internal/playlist"
	"github.com/llehouerou/mcotp/internal/provider"
	"github.com/llehouerou/mcotp/internal/queue"
	"github.com/llehouerou/mcotp/internal/state"
)

type fakeEngine struct {
	calls    []string
	err      error
	moved    bool
	status   queue.Status
	snapshot queue.Snapshot
}

func (f *fakeEngine) Next() (bool, error) {
	f.calls = append(f.calls, "next")
	return f.moved, f.err
}

func (f *fakeEngine) ToggleBandLock(id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("band:%d", id))
	return f.err
}

func (f *fakeEngine) ToggleAlbumLock(id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("album:%d", id))
	return f.err
}

func (f *fakeEngine) ToggleYearLock() error {
	f.calls = append(f.calls, "year")
	return f.err
}

func (f *fakeEngine) CycleSubMode() error {
	f.calls = append(f.calls, "cycle")
	return f.err
}

func (f *fakeEngine) Status() (queue.Status, error) { return f.status, f.err }

func (f *fakeEngine) Snapshot() (queue.Snapshot, error) { return f.snapshot, f.err }

func track(id int64, artist, title string) playlist.Track {
	return playlist.Track{
		MediaID:      fmt.Sprintf("song:%d", id),
		SongID:       id,
		Artist:       artist,
		Title:        title,
		DisplayTitle: title,
	}
}

func newTestModel(t *testing.T) (Model, *fakeEngine, *playback.Buffer, *state.Mock) {
	t.Helper()
	engine := &fakeEngine{moved: true}
	player := playback.NewBuffer()
	t.Cleanup(func() { _ = player.Close() })
	stateMgr := state.NewMock()
	return New(engine, player, stateMgr, Options{Upcoming: 3}), engine, player, stateMgr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd, flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestUpdate_KeysDispatchEngineCommands(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		call string
		op   errmsg.Op
	}{
		{runes("n"), "next", errmsg.OpPlaybackNext},
		{runes("b"), "band:0", errmsg.OpModeChange},
		{runes("a"), "album:0", errmsg.OpModeChange},
		{runes("y"), "year", errmsg.OpModeChange},
		{runes("m"), "cycle", errmsg.OpModeChange},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			m, engine, _, _ := newTestModel(t)

			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			msg := cmd()

			assert.Equal(t, []string{tt.call}, engine.calls)
			assert.Equal(t, ActionResultMsg{Op: tt.op}, msg)
		})
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_PlayPauseTogglesPlayer(t *testing.T) {
	m, _, player, _ := newTestModel(t)
	player.Add(track(1, "Alpha", "One"))
	require.Equal(t, playback.StatePlaying, player.State())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, cmd)
	assert.Equal(t, playback.StatePaused, player.State())
	assert.Equal(t, playback.StatePaused, updated.(Model).playState)
}

func TestUpdate_HelpKeyTogglesFullHelp(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	updated, _ := m.Update(runes("?"))
	assert.True(t, updated.(Model).help.ShowAll)

	updated, _ = updated.Update(runes("?"))
	assert.False(t, updated.(Model).help.ShowAll)
}

func TestUpdate_NextWithNothingQueuedNotifies(t *testing.T) {
	m, engine, _, _ := newTestModel(t)
	engine.moved = false

	_, cmd := m.Update(runes("n"))
	msg := cmd()
	assert.Equal(t, "Nothing queued yet", msg.(ActionResultMsg).Message)

	updated, _ := m.Update(msg)
	require.NotNil(t, updated.(Model).notification)
	assert.False(t, updated.(Model).notification.IsError)
}

func TestUpdate_ActionErrorShowsNotification(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	updated, cmd := m.Update(ActionResultMsg{Op: errmsg.OpModeChange, Err: queue.ErrClosed})
	assert.NotNil(t, cmd)

	n := updated.(Model).notification
	require.NotNil(t, n)
	assert.True(t, n.IsError)
	assert.Equal(t, "Failed to change mode: queue: engine closed", n.Message)

	// A stale clear leaves it in place, the matching one removes it.
	updated, _ = updated.Update(NotificationClearMsg{ID: n.ID + 1})
	assert.NotNil(t, updated.(Model).notification)
	updated, _ = updated.Update(NotificationClearMsg{ID: n.ID})
	assert.Nil(t, updated.(Model).notification)
}

func TestUpdate_TrackChangeSavesSnapshot(t *testing.T) {
	m, engine, player, stateMgr := newTestModel(t)
	cur := track(1, "Alpha", "One")
	engine.snapshot = queue.Snapshot{
		CurrentItem: &cur,
		FutureItems: []playlist.Track{track(2, "Alpha", "Two")},
		Provider:    provider.Encode(provider.BandShuffle(1)),
	}
	engine.status = queue.Status{Mode: provider.ModeBand, Label: "Alpha", Current: &cur}

	_, cmd := m.Update(TrackChangedMsg{Current: &cur, Index: 0})

	// Closing the player releases the event watcher in the batch.
	require.NoError(t, player.Close())
	msgs := runCmd(cmd)

	assert.Contains(t, msgs, StatusMsg{Status: engine.status})
	assert.Contains(t, msgs, ServiceClosedMsg{})
	assert.Equal(t, 1, stateMgr.Saves())

	saved, err := stateMgr.GetSnapshot()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, engine.snapshot, saved.Snapshot)
}

func TestSaveQueueState_EngineErrorReported(t *testing.T) {
	m, engine, _, stateMgr := newTestModel(t)
	engine.err = errors.New("boom")

	msg := m.SaveQueueState()()

	assert.Equal(t, ActionResultMsg{Op: errmsg.OpQueueSave, Err: engine.err}, msg)
	assert.Zero(t, stateMgr.Saves())
}

func TestWatchServiceEvents_ConvertsPlayerEvents(t *testing.T) {
	m, _, player, _ := newTestModel(t)

	player.Add(track(1, "Alpha", "One"))

	// Add to an empty player publishes a state, a track and a queue change.
	seen := map[string]bool{}
	for range 3 {
		switch msg := m.WatchServiceEvents()().(type) {
		case StateChangedMsg:
			assert.Equal(t, playback.StatePlaying, msg.Current)
			seen["state"] = true
		case TrackChangedMsg:
			require.NotNil(t, msg.Current)
			assert.Equal(t, int64(1), msg.Current.SongID)
			seen["track"] = true
		case QueueChangedMsg:
			seen["queue"] = true
		default:
			t.Fatalf("unexpected message %T", msg)
		}
	}
	assert.Len(t, seen, 3)

	require.NoError(t, player.Close())
	assert.Equal(t, ServiceClosedMsg{}, m.WatchServiceEvents()())
}

func TestUpdate_ServiceClosedQuits(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	_, cmd := m.Update(ServiceClosedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView_ShowsModeCurrentAndUpcoming(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	cur := track(1, "Alpha", "One")
	cur.Album = "First"
	cur.Year = 1994
	cur.TrackNumber = 2
	var upcoming []playlist.Track
	for i := range 5 {
		upcoming = append(upcoming, track(int64(10+i), "Beta", fmt.Sprintf("Song %d", i)))
	}

	updated, _ := m.Update(StatusMsg{Status: queue.Status{
		Mode:     provider.ModeBand,
		Label:    "Alpha",
		Kind:     provider.KindBandShuffle,
		Current:  &cur,
		Upcoming: upcoming,
	}})
	view := updated.View()

	assert.Contains(t, view, "Band")
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "Alpha - One")
	assert.Contains(t, view, "First · 1994 · track 2")
	assert.Contains(t, view, "5 queued")
	assert.Contains(t, view, "Beta - Song 2")
	assert.NotContains(t, view, "Beta - Song 3")
}

func TestView_EmptyAndFetching(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Nothing playing")
	assert.Contains(t, view, "Collection")

	updated, _ := m.Update(StatusMsg{Status: queue.Status{Fetching: true}})
	assert.Contains(t, updated.View(), "fetching...")
}

func TestTrackLabel(t *testing.T) {
	tests := []struct {
		name     string
		track    *playlist.Track
		expected string
	}{
		{"nil", nil, ""},
		{"artist and display title", &playlist.Track{Artist: "Alpha", Title: "one", DisplayTitle: "One"}, "Alpha - One"},
		{"falls back to title", &playlist.Track{Artist: "Alpha", Title: "one"}, "Alpha - one"},
		{"no artist", &playlist.Track{DisplayTitle: "One"}, "One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trackLabel(tt.track))
		})
	}
}

func TestPlayStateIcon(t *testing.T) {
	assert.Equal(t, "▶", playStateIcon(playback.StatePlaying))
	assert.Equal(t, "⏸", playStateIcon(playback.StatePaused))
	assert.Equal(t, "■", playStateIcon(playback.StateStopped))
}
