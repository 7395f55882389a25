package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// DetailLoadedMsg carries the loaded todo, or the error from the store.
type DetailLoadedMsg struct {
	Todo *model.Todo
	Err  error
}

// Action names carried by ActionMsg.
const (
	ActionEdit   = "edit"
	ActionToggle = "toggle"
	ActionDelete = "delete"
)

// ActionMsg asks the parent to act on the displayed todo.
type ActionMsg struct {
	Action string
	TodoID string
}

// Model is the todo detail view component.
type Model struct {
	todo     *model.Todo
	err      error
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, max(height-2, 0))
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		m.todo = msg.Todo
		m.err = msg.Err
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Edit):
			return m, m.action(ActionEdit)

		case key.Matches(msg, m.keys.Toggle):
			return m, m.action(ActionToggle)

		case key.Matches(msg, m.keys.Delete):
			return m, m.action(ActionDelete)
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string) tea.Cmd {
	if m.todo == nil {
		return nil
	}
	id := m.todo.ID
	return func() tea.Msg {
		return ActionMsg{Action: name, TodoID: id}
	}
}

// View renders the detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return centered.Render("Loading todo...")
	}
	if m.err != nil {
		return centered.Foreground(theme.ColorRed).Render(m.err.Error())
	}
	if m.todo == nil {
		return centered.Render("No todo selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.todo == nil {
		return ""
	}

	todo := m.todo
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(todo.Title))

	statusBadge := theme.StatusStyle(todo.Status).Render(theme.StatusLabel(todo.Status))
	priBadge := theme.PriorityStyle(todo.Priority).Render(theme.PriorityLabel(todo.Priority) + " priority")
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Top, statusBadge, "  ", priBadge)
	if todo.IsOverdue(time.Now()) {
		badgeLine = lipgloss.JoinHorizontal(lipgloss.Top, badgeLine, "  ", theme.OverdueStyle.Render("OVERDUE"))
	}
	sections = append(sections, badgeLine, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(10)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return metaStyle.Render(label+":") + " " + valStyle.Render(value)
	}

	sections = append(sections, row("ID", todo.ID))
	if todo.Category != "" {
		sections = append(sections, row("Category", todo.Category))
	}
	if todo.DueDate != "" {
		sections = append(sections, row("Due", todo.DueDate))
	}
	if todo.Location != nil {
		loc := fmt.Sprintf("%.4f, %.4f", todo.Location.Latitude, todo.Location.Longitude)
		sections = append(sections, row("Location", loc))
		if todo.Location.Address != "" {
			sections = append(sections, row("Address", todo.Location.Address))
		}
	}
	if !todo.CreatedAt.IsZero() {
		sections = append(sections, row("Created", todo.CreatedAt.Format("2006-01-02 15:04")))
	}
	if !todo.UpdatedAt.IsZero() {
		sections = append(sections, row("Updated", todo.UpdatedAt.Format("2006-01-02 15:04")))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, descHeaderStyle.Render("Description"))

	body := todo.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTodo updates the todo being displayed and re-renders the content.
func (m *Model) SetTodo(todo *model.Todo) {
	m.todo = todo
	m.err = nil
	m.loading = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Current returns the displayed todo, if any.
func (m Model) Current() (*model.Todo, bool) {
	return m.todo, m.todo != nil
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 0)
}
