package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Switch   key.Binding
	Add      key.Binding
	Search   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Restore  key.Binding
	Purge    key.Binding
	Clear    key.Binding
	Hide     key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑/K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓/J", "move down")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		Add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Restore:  key.NewBinding(key.WithKeys("r", "u"), key.WithHelp("r", "restore")),
		Purge:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "delete forever")),
		Clear:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear deleted")),
		Hide:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide deleted")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:   key.NewBinding(key.WithKeys("R", "ctrl+r"), key.WithHelp("R", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Search, k.Edit, k.Delete, k.Restore, k.Switch, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Switch},
		{k.Add, k.Search, k.Edit, k.Copy, k.Reload},
		{k.Delete, k.Restore, k.Purge, k.Clear, k.Hide},
		{k.Help, k.Quit},
	}
}
