// Package command is the ":" prompt. It parses what was typed into a
// Command and leaves running it to the parent.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/theme"
)

// Command names.
const (
	CmdPage   = "page"
	CmdSearch = "search"
	CmdShow   = "show"
	CmdDone   = "done"
	CmdDelete = "delete"
	CmdTab    = "tab"
	CmdQuit   = "quit"
)

// Command is one parsed line.
type Command struct {
	Name string
	Arg  string
	// N is Arg as a number for "page".
	N int
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Command Command
}

// CommandErrMsg is emitted when the line does not parse.
type CommandErrMsg struct {
	Err error
}

// CancelMsg is emitted when the prompt is dismissed.
type CancelMsg struct{}

var aliases = map[string]string{
	"p": CmdPage, "page": CmdPage,
	"s": CmdSearch, "search": CmdSearch,
	"o": CmdShow, "show": CmdShow, "open": CmdShow,
	"x": CmdDone, "done": CmdDone,
	"rm": CmdDelete, "delete": CmdDelete,
	"t": CmdTab, "tab": CmdTab,
	"q": CmdQuit, "quit": CmdQuit,
}

// Usage describes one command for the help screen.
type Usage struct {
	Name    string
	Args    string
	Aliases []string
	Summary string
}

// Usages lists every command in the order the help screen shows them.
func Usages() []Usage {
	return []Usage{
		{CmdPage, "N", []string{"p"}, "jump to page N of the list"},
		{CmdSearch, "[text]", []string{"s"}, "search the list; empty clears it"},
		{CmdShow, "ID", []string{"o", "open"}, "open a todo's detail"},
		{CmdDone, "ID", []string{"x"}, "mark a todo done"},
		{CmdDelete, "ID", []string{"rm"}, "delete a todo"},
		{CmdTab, "NAME|N", []string{"t"}, "switch to list, map, dashboard or categories"},
		{CmdQuit, "", []string{"q"}, "quit"},
	}
}

// Parse reads "name [arg]". Search keeps everything after the name,
// spaces included, and may be empty to clear the search.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	canonical, ok := aliases[strings.ToLower(name)]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", name)
	}
	c := Command{Name: canonical, Arg: arg}

	switch canonical {
	case CmdPage:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("page needs a number from 1, got %q", arg)
		}
		c.N = n
	case CmdShow, CmdDone, CmdDelete, CmdTab:
		if arg == "" {
			return Command{}, fmt.Errorf("%s needs an argument", canonical)
		}
	}
	return c, nil
}

// Model is the command palette view.
type Model struct {
	input   textinput.Model
	history []string
	recall  int
	width   int
	height  int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "page 2 · search milk · show 3 · done 3 · delete 3 · tab map · quit"
	ti.Prompt = ": "
	ti.Width = max(width-6, 0)

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, func() tea.Msg { return CancelMsg{} }
			}
			m.history = append(m.history, line)
			m.recall = len(m.history)
			c, err := Parse(line)
			if err != nil {
				return m, func() tea.Msg { return CommandErrMsg{Err: err} }
			}
			return m, func() tea.Msg { return CommandMsg{Command: c} }

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }

		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.history[m.recall])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall < len(m.history)-1 {
				m.recall++
				m.input.SetValue(m.history[m.recall])
			} else {
				m.recall = len(m.history)
				m.input.Reset()
			}
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	return lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Padding(0, 1).
		Width(m.width).
		Render(m.input.View())
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 0)
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the prompt is taking input.
func (m Model) Focused() bool {
	return m.input.Focused()
}
