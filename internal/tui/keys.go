package tui

import "github.com/charmbracelet/bubbles/key"

// Raw key names used where a binding would be overkill.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyYes      = "y"
)

// KeyMap holds the list screen bindings.
type KeyMap struct {
	Filter    key.Binding
	First     key.Binding
	Previous  key.Binding
	Next      key.Binding
	Last      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Remove    key.Binding
	Refresh   key.Binding
	Sort      key.Binding
	SortOrder key.Binding
	Detail    key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		First:     key.NewBinding(key.WithKeys("<", "ctrl+home"), key.WithHelp("<", "first")),
		Previous:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Last:      key.NewBinding(key.WithKeys(">", "ctrl+end"), key.WithHelp(">", "last")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		SortOrder: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
		Detail:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Filter, k.First, k.Previous, k.Next, k.Last,
		k.Add, k.Edit, k.Remove, k.Sort, k.SortOrder, k.Detail, k.Quit,
	}
}

// FullHelp returns the bindings grouped in columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.First, k.Previous, k.Next, k.Last},
		{k.Filter, k.Sort, k.SortOrder, k.Refresh},
		{k.Add, k.Edit, k.Remove, k.Detail, k.Quit},
	}
}
