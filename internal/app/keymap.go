package app

import (
	"github.com/Akashdeep-Patra/spots/internal/config"
	"github.com/Akashdeep-Patra/spots/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings used across the application.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Refresh   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Enter     key.Binding
	Back      key.Binding

	// Mutations on the focused component.
	Append    key.Binding
	Delete    key.Binding
	MoveToTop key.Binding
	Search    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}

// NewKeyMap builds the key map from configured bindings. Arrow keys and the
// usual aliases are always bound next to the configured key.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	kb = kb.WithDefaults()
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit+" / ctrl+c", "quit")),
		Help:      key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "toggle this help")),
		NextFocus: key.NewBinding(key.WithKeys(kb.Tab), key.WithHelp(kb.Tab, "next component")),
		PrevFocus: key.NewBinding(key.WithKeys(kb.ShiftTab), key.WithHelp(kb.ShiftTab, "previous component")),
		Refresh:   key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "reload layout file")),
		Up:        key.NewBinding(key.WithKeys("up", kb.Up), key.WithHelp(kb.Up+" / ↑", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", kb.Down), key.WithHelp(kb.Down+" / ↓", "move down")),
		Left:      key.NewBinding(key.WithKeys("left", kb.Left), key.WithHelp(kb.Left+" / ←", "previous card or cell")),
		Right:     key.NewBinding(key.WithKeys("right", kb.Right), key.WithHelp(kb.Right+" / →", "next card or cell")),
		PageUp:    key.NewBinding(key.WithKeys(kb.PageUp, "ctrl+u"), key.WithHelp("pgup / ctrl+u", "page up")),
		PageDown:  key.NewBinding(key.WithKeys(kb.PageDown, "ctrl+d"), key.WithHelp("pgdn / ctrl+d", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", kb.Top), key.WithHelp(kb.Top+" / Home", "go to top")),
		End:       key.NewBinding(key.WithKeys("end", kb.Bottom), key.WithHelp(kb.Bottom+" / End", "go to bottom")),
		Enter:     key.NewBinding(key.WithKeys(kb.Enter), key.WithHelp(kb.Enter, "activate item")),
		Back:      key.NewBinding(key.WithKeys(kb.Back), key.WithHelp(kb.Back, "back / cancel")),

		Append:    key.NewBinding(key.WithKeys(kb.Append), key.WithHelp(kb.Append, "append item")),
		Delete:    key.NewBinding(key.WithKeys(kb.Delete), key.WithHelp(kb.Delete, "delete item")),
		MoveToTop: key.NewBinding(key.WithKeys(kb.MoveToTop), key.WithHelp(kb.MoveToTop, "move item to top")),
		Search:    key.NewBinding(key.WithKeys(kb.Search), key.WithHelp(kb.Search, "fuzzy search")),
	}
}

// HelpEntries groups the bindings for the help overlay.
func (k KeyMap) HelpEntries() map[string][]components.HelpEntry {
	entries := func(bs ...key.Binding) []components.HelpEntry {
		out := make([]components.HelpEntry, len(bs))
		for i, b := range bs {
			out[i] = components.EntryFor(b)
		}
		return out
	}
	return map[string][]components.HelpEntry{
		"Navigation": entries(k.Down, k.Up, k.Left, k.Right, k.PageUp, k.PageDown, k.Home, k.End),
		"Components": entries(k.NextFocus, k.PrevFocus, k.Enter, k.Search),
		"Mutations":  entries(k.Append, k.Delete, k.MoveToTop),
		"General":    entries(k.Refresh, k.Help, k.Back, k.Quit),
	}
}
