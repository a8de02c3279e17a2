package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the normal-mode keybindings. Text-entry modes capture
// printable runes directly and only honour enter and esc.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Focus  key.Binding

	Stage      key.Binding
	StageAll   key.Binding
	Unstage    key.Binding
	UnstageAll key.Binding
	Commit     key.Binding
	Push       key.Binding
	Log        key.Binding
	Search     key.Binding
	Copy       key.Binding

	Confirm key.Binding
	Back    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),

		Stage:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stage")),
		StageAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "stage all")),
		Unstage:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unstage")),
		UnstageAll: key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "unstage all")),
		Commit:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Push:       key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "push")),
		Log:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
