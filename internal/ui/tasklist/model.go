package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/theme"
)

// SelectedTodoMsg is sent when a user selects a todo to view details.
type SelectedTodoMsg struct {
	TodoID string
}

// searchSettledMsg fires once the search input has been idle for the
// debounce interval. Only the latest seq is honoured.
type searchSettledMsg struct {
	seq int
}

// Model is the searchable, paginated todo list.
type Model struct {
	list        list.Model
	paginator   paginator.Model
	keys        *keys.KeyMap
	all         []model.Todo
	result      query.Result
	search      string
	page        int
	pageSize    int
	debounce    time.Duration
	searchMode  bool
	searchInput textinput.Model
	searchSeq   int
	width       int
	height      int
}

// New creates a new todo list model.
func New(k *keys.KeyMap, pageSize int, debounce time.Duration, width, height int) Model {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}

	l := list.New([]list.Item{}, ItemDelegate{}, width, listHeight(height))
	l.Title = "Todos"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle
	// Quitting and paging belong to the app and the query paginator.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.NextPage.SetEnabled(false)
	l.KeyMap.PrevPage.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = lipgloss.NewStyle().Foreground(theme.ColorBlue).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render("•")
	p.SetTotalPages(1)

	si := textinput.New()
	si.Placeholder = "search title, description, category, priority, status..."
	si.Prompt = "/ "
	si.Width = max(width-4, 0)

	m := Model{
		list:        l,
		paginator:   p,
		keys:        k,
		page:        1,
		pageSize:    pageSize,
		debounce:    debounce,
		searchInput: si,
		width:       width,
		height:      height,
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetTodos replaces the full collection and re-runs the current query.
func (m *Model) SetTodos(todos []model.Todo) {
	m.all = todos
	m.refresh()
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchSettledMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.applySearch(m.searchInput.Value())
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchSeq++
		m.applySearch(m.searchInput.Value())
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.searchSeq++
		m.applySearch("")
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	if m.debounce <= 0 {
		m.applySearch(m.searchInput.Value())
		return m, cmd
	}
	seq := m.searchSeq
	tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq}
	})
	return m, tea.Batch(cmd, tick)
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		todo, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTodoMsg{TodoID: todo.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextPage):
		if m.page < m.result.PageCount {
			m.page++
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.refresh()
		}
		return m, nil
	}

	// Delegate to the list for up/down navigation
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applySearch commits settled search text. A changed search always goes
// back to page 1.
func (m *Model) applySearch(search string) {
	if search != m.search {
		m.search = search
		m.page = 1
	}
	m.refresh()
}

// refresh re-runs the query and syncs the list and paginator with it.
func (m *Model) refresh() {
	m.result = query.RunWithSize(m.all, m.search, m.page, m.pageSize)
	if len(m.result.Items) == 0 && m.result.PageCount > 0 {
		// The current page vanished, e.g. after deleting its last todo.
		m.page = query.ClampPage(m.page, m.result.PageCount)
		m.result = query.RunWithSize(m.all, m.search, m.page, m.pageSize)
	}

	items := make([]list.Item, len(m.result.Items))
	for i, todo := range m.result.Items {
		items[i] = TodoItem{Todo: todo}
	}
	selected := m.list.Index()
	m.list.SetItems(items)
	if selected >= len(items) {
		selected = len(items) - 1
	}
	if selected >= 0 {
		m.list.Select(selected)
	}

	m.paginator.SetTotalPages(max(m.result.PageCount, 1))
	m.paginator.Page = m.page - 1
}

// SetSearch replaces the search text and applies it at once, skipping the
// debounce.
func (m *Model) SetSearch(search string) {
	m.searchMode = false
	m.searchInput.Blur()
	m.searchInput.SetValue(search)
	m.searchSeq++
	m.applySearch(search)
}

// SetPage jumps to page, clamped to the pages that exist.
func (m *Model) SetPage(page int) {
	m.page = query.ClampPage(page, m.result.PageCount)
	m.refresh()
}

// SetPageSize changes the number of todos per page and returns to page 1.
func (m *Model) SetPageSize(size int) {
	if size < 1 {
		size = query.DefaultPageSize
	}
	m.pageSize = size
	m.page = 1
	m.refresh()
}

// SetDebounce changes how long typing must pause before a search applies.
func (m *Model) SetDebounce(d time.Duration) { m.debounce = d }

// PageSize returns the number of todos per page.
func (m Model) PageSize() int { return m.pageSize }

// Selected returns the highlighted todo, if any.
func (m Model) Selected() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// Result returns the query result currently displayed.
func (m Model) Result() query.Result { return m.result }

// Search returns the settled search text.
func (m Model) Search() string { return m.search }

// Page returns the current 1-based page.
func (m Model) Page() int { return m.page }

// Searching reports whether the search input has focus, so global keys
// should pass through as text.
func (m Model) Searching() bool { return m.searchMode }

// Summary is the "N of M tasks" line shown above the list.
func (m Model) Summary() string {
	s := fmt.Sprintf("%d of %d tasks", m.result.FilteredCount, m.result.TotalCount)
	if m.result.FilteredCount > m.pageSize {
		s += fmt.Sprintf(" (page %d of %d)", m.page, m.result.PageCount)
	}
	return s
}

// View renders the todo list view.
func (m Model) View() string {
	var sections []string

	if m.searchMode || m.searchInput.Value() != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View()))
	}

	sections = append(sections, theme.HelpStyle.Padding(0, 1).Render(m.Summary()))

	if len(m.result.Items) == 0 {
		sections = append(sections, m.renderEmptyState())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.list.View())
	if m.result.PageCount > 1 {
		sections = append(sections, lipgloss.NewStyle().Padding(0, 2).Render(m.paginator.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderEmptyState shows guidance text when no todos are displayed.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(listHeight(m.height)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.search != "" {
		return style.Render("No matching todos.\nPress / to change the search or esc to clear it.")
	}

	return style.Render("No todos yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, listHeight(height))
	m.searchInput.Width = max(width-4, 0)
}

// listHeight leaves room for the search bar, summary line, and paginator.
func listHeight(height int) int {
	return max(height-4, 1)
}
