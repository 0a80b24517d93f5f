package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Drawer  key.Binding
	Home    key.Binding
	Scanner key.Binding
	History key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Theme   key.Binding
	Copy    key.Binding
	Delete  key.Binding
	Clear   key.Binding
	Filter  key.Binding
	Grant   key.Binding
	Restart key.Binding
	Help    key.Binding
	Suspend key.Binding
	Quit    key.Binding
	// ForceQuit works even while typing into the scanner input.
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		Drawer:    key.NewBinding(key.WithKeys("esc", "m"), key.WithHelp("esc/m", "menu")),
		Home:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Scanner:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "scanner")),
		History:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "history")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Theme:     key.NewBinding(key.WithKeys("t", "ctrl+t"), key.WithHelp("t", "theme")),
		Copy:      key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter/c", "copy")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Clear:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Grant:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grant permission")),
		Restart:   key.NewBinding(key.WithKeys("g", "enter"), key.WithHelp("g", "restart scanner")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Suspend:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// screenHelp adapts a list of bindings to help.KeyMap.
type screenHelp []key.Binding

func (h screenHelp) ShortHelp() []key.Binding  { return h }
func (h screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (m *Model) helpBindings() screenHelp {
	k := m.keys
	if m.drawerOpen {
		return screenHelp{k.Up, k.Down, k.Select, k.Drawer, k.Quit}
	}
	switch m.screen {
	case ScreenScanner:
		if !m.permission.Granted() {
			return screenHelp{k.Grant, k.Next, k.Drawer, k.Theme, k.Quit}
		}
		if !m.gate.Active() {
			return screenHelp{k.Restart, k.Next, k.Prev, k.Drawer, k.Theme, k.Quit}
		}
		if m.wedge != nil {
			return screenHelp{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
				k.Next, k.Prev, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
				key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
				key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			}
		}
		return screenHelp{k.Next, k.Prev, k.Drawer, k.Theme, k.Suspend, k.Quit}
	case ScreenHistory:
		if m.filtering {
			return screenHelp{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
				key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
			}
		}
		return screenHelp{k.Up, k.Down, k.Copy, k.Delete, k.Clear, k.Filter, k.Next, k.Drawer, k.Theme, k.Quit}
	default:
		return screenHelp{k.Next, k.Home, k.Scanner, k.History, k.Drawer, k.Theme, k.Help, k.Quit}
	}
}
