package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down     key.Binding
	Up       key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// View tabs
	NextTab      key.Binding
	TabList      key.Binding
	TabMap       key.Binding
	TabDashboard  key.Binding
	TabCategories key.Binding

	// Actions
	New    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Rename key.Binding

	// Command palette and settings
	Command  key.Binding
	Settings key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("h/←", "prev page"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		TabList: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "list"),
		),
		TabMap: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "map"),
		),
		TabDashboard: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "dashboard"),
		),
		TabCategories: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "categories"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new todo"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename category"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Settings: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "settings"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.New,
		k.Search, k.NextTab, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select, k.Back},
		{k.Search, k.Command, k.Settings, k.Help, k.Quit},
		{k.NextTab, k.TabList, k.TabMap, k.TabDashboard, k.TabCategories},
		{k.New, k.Edit, k.Toggle, k.Delete, k.Rename},
	}
}
