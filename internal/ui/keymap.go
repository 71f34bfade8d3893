package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the grid key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Left        key.Binding
	Right       key.Binding
	HeaderLeft  key.Binding
	HeaderRight key.Binding
	NextCol     key.Binding
	PrevCol     key.Binding
	Sort        key.Binding
	Narrow      key.Binding
	Widen       key.Binding
	Inspect     key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
		HeaderLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "header left")),
		HeaderRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "header right")),
		NextCol:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		PrevCol:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("s-tab", "prev column")),
		Sort:        key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort column")),
		Narrow:      key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow column")),
		Widen:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen column")),
		Inspect:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect row")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the collapsed help bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.NextCol, k.Inspect, k.Help, k.Quit}
}

// FullHelp returns all bindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Left, k.Right, k.HeaderLeft, k.HeaderRight, k.NextCol, k.PrevCol},
		{k.Sort, k.Narrow, k.Widen, k.Inspect, k.Reload, k.Quit},
	}
}
