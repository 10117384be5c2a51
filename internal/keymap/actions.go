// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause Action = "play_pause"
	ActionNext      Action = "next"

	// Mode actions
	ActionBandLock     Action = "band_lock"
	ActionAlbumLock    Action = "album_lock"
	ActionYearLock     Action = "year_lock"
	ActionCycleSubMode Action = "cycle_sub_mode"
)
