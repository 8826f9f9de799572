// Package keymap defines keybindings for the sync progress view.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings available while a sync runs.
type KeyMap struct {
	// Quit cancels the sync and exits once it has stopped.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "cancel sync"),
		),
	}
}

// ShortHelp returns the bindings shown under the progress line.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
