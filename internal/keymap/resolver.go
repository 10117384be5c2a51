package keymap

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// shortHelp lists the actions shown in the one-line help.
var shortHelp = []Action{ActionNext, ActionBandLock, ActionAlbumLock, ActionYearLock, ActionHelp, ActionQuit}

// Resolver maps key presses to actions. It implements help.KeyMap.
type Resolver struct {
	actions  []Action
	keys     []key.Binding
	byAction map[Action]key.Binding
}

// NewResolver creates a resolver from bindings. An action bound twice keeps
// its first binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{byAction: make(map[Action]key.Binding)}
	for _, b := range bindings {
		if _, ok := r.byAction[b.Action]; ok {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.helpKey(), b.Description))
		r.actions = append(r.actions, b.Action)
		r.keys = append(r.keys, kb)
		r.byAction[b.Action] = kb
	}
	return r
}

// Resolve returns the action for a key press, or empty string if not bound.
func (r *Resolver) Resolve(k fmt.Stringer) Action {
	for i, kb := range r.keys {
		if key.Matches(k, kb) {
			return r.actions[i]
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action].Keys()
}

func (r *Resolver) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(shortHelp))
	for _, a := range shortHelp {
		if kb, ok := r.byAction[a]; ok {
			out = append(out, kb)
		}
	}
	return out
}

func (r *Resolver) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for i := 0; i < len(r.keys); i += 3 {
		out = append(out, r.keys[i:min(i+3, len(r.keys))])
	}
	return out
}
