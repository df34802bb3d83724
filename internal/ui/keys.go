package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Pick        key.Binding
	Cancel      key.Binding
	Enter       key.Binding
	Back        key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ZoomCommit  key.Binding
	ZoomCancel  key.Binding
	Drilldown   key.Binding
	Background  key.Binding
	FontBigger  key.Binding
	FontSmaller key.Binding
	Bold        key.Binding
	CellBigger  key.Binding
	CellSmaller key.Binding
	Find        key.Binding
	Rescan      key.Binding
	Presets     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Pick: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pick up/drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "parent folder"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomCommit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "keep zoom"),
		),
		ZoomCancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "undo zoom"),
		),
		Drilldown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle drilldown"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next background"),
		),
		FontBigger: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "larger labels"),
		),
		FontSmaller: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "smaller labels"),
		),
		Bold: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "toggle bold"),
		),
		CellBigger: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "larger cells"),
		),
		CellSmaller: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "smaller cells"),
		),
		Find: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Presets: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "presets"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Pick, k.Back, k.ZoomIn, k.ZoomOut, k.Find, k.Help, k.Quit}
}

// FullHelp returns all help bindings
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Back, k.Pick, k.Cancel},
		{k.ZoomIn, k.ZoomOut, k.ZoomCommit, k.ZoomCancel},
		{k.Drilldown, k.Background, k.FontBigger, k.FontSmaller, k.Bold, k.CellBigger, k.CellSmaller},
		{k.Find, k.Rescan, k.Presets, k.Help, k.Quit},
	}
}
