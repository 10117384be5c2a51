package keymap

// Binding ties keys to an action. Keys use the names bubbletea gives key
// presses ("n", " ", "ctrl+c").
type Binding struct {
	Action      Action
	Keys        []string
	Help        string // key label shown in help, defaults to the first key
	Description string
}

// All contains the default key bindings, in help order.
var All = []Binding{
	{ActionNext, []string{"n"}, "", "next"},
	{ActionPlayPause, []string{" "}, "space", "play/pause"},
	{ActionBandLock, []string{"b"}, "", "band lock"},
	{ActionAlbumLock, []string{"a"}, "", "album lock"},
	{ActionYearLock, []string{"y"}, "", "year lock"},
	{ActionCycleSubMode, []string{"m"}, "", "sub-mode"},
	{ActionHelp, []string{"?"}, "", "help"},
	{ActionQuit, []string{"q", "ctrl+c"}, "q", "quit"},
}

func (b Binding) helpKey() string {
	if b.Help != "" {
		return b.Help
	}
	if len(b.Keys) > 0 {
		return b.Keys[0]
	}
	return ""
}
