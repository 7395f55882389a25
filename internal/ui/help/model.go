// Package help is the "?" screen. It shows the keys for the screen it was
// opened from first, then the global keys and the ":" commands.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/theme"
	"github.com/nhle/geotodo/internal/ui/command"
)

// Context is the screen help was opened from.
type Context int

const (
	ContextList Context = iota
	ContextMap
	ContextDashboard
	ContextCategories
	ContextDetail
)

var contextTitles = map[Context]string{
	ContextList:       "List",
	ContextMap:        "Map",
	ContextDashboard:  "Dashboard",
	ContextCategories: "Categories",
	ContextDetail:     "Todo detail",
}

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Model is the help view.
type Model struct {
	keys    *keys.KeyMap
	help    help.Model
	context Context
	width   int
	height  int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// SetContext selects the screen whose keys are listed first.
func (m *Model) SetContext(c Context) { m.context = c }

// Context returns the current context.
func (m Model) Context() Context { return m.context }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// relabel copies b with a description that fits the screen.
func relabel(b key.Binding, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, desc))
}

// Sections returns the context section followed by the global one.
func (m Model) Sections() []Section {
	k := m.keys
	var local []key.Binding
	switch m.context {
	case ContextList:
		local = []key.Binding{
			k.Up, k.Down, k.PrevPage, k.NextPage, k.Select,
			relabel(k.Search, "search (enter keeps it, esc clears)"),
			k.New, k.Edit, k.Toggle, k.Delete,
		}
	case ContextMap:
		local = []key.Binding{k.Up, k.Down, relabel(k.Select, "open marker's todo"), k.New}
	case ContextDashboard:
		local = []key.Binding{k.New}
	case ContextCategories:
		local = []key.Binding{
			k.Up, k.Down,
			relabel(k.Select, "show in list"),
			k.Rename,
			relabel(k.Delete, "clear category"),
		}
	case ContextDetail:
		local = []key.Binding{
			relabel(k.Up, "scroll up"), relabel(k.Down, "scroll down"),
			k.Edit, k.Toggle, k.Delete, k.Back,
		}
	}

	return []Section{
		{Title: contextTitles[m.context], Bindings: local},
		{Title: "Everywhere", Bindings: []key.Binding{
			k.NextTab, k.TabList, k.TabMap, k.TabDashboard, k.TabCategories,
			k.Command, k.Settings, k.Help, k.Quit,
		}},
	}
}

// View renders the help screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)

	m.help.Width = max(m.width-4, 0)
	m.help.ShowAll = true

	var columns []string
	for _, s := range m.Sections() {
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				sectionStyle.Render(s.Title),
				m.help.FullHelpView([][]key.Binding{s.Bindings}),
			),
		))
	}

	parts := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		sectionStyle.Render("Commands (:)"),
		m.commandsView(),
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) commandsView() string {
	aliasStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	var b strings.Builder
	for _, u := range command.Usages() {
		usage := strings.TrimSpace(u.Name + " " + u.Args)
		fmt.Fprintf(&b, "%-16s %s  %s\n", usage, u.Summary,
			aliasStyle.Render("("+strings.Join(u.Aliases, ", ")+")"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-4, 0)
}
