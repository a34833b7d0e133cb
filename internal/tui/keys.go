package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Erase   key.Binding
	Move    key.Binding
	Extract key.Binding
	Rename  key.Binding
	Copy    key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "row down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/back")),
		Erase:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "erase")),
		Move:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "pick up/drop")),
		Extract: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "take out")),
		Rename:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "rename")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy path")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// gridHelp and folderHelp implement help.KeyMap for the footer.
type gridHelp struct{ k keyMap }

func (h gridHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Open, h.k.Move, h.k.Back, h.k.Copy, h.k.Reset, h.k.Quit}
}

func (h gridHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Left, h.k.Right, h.k.Up, h.k.Down},
		h.ShortHelp(),
	}
}

type folderHelp struct{ k keyMap }

func (h folderHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Open, h.k.Extract, h.k.Rename, h.k.Back, h.k.Quit}
}

func (h folderHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Left, h.k.Right, h.k.Up, h.k.Down},
		h.ShortHelp(),
	}
}
