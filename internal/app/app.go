package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/geotodo/internal/logging"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/store"
	"github.com/nhle/geotodo/internal/theme"
	"github.com/nhle/geotodo/internal/ui"
	"github.com/nhle/geotodo/internal/ui/categories"
	"github.com/nhle/geotodo/internal/ui/command"
	configview "github.com/nhle/geotodo/internal/ui/config"
	"github.com/nhle/geotodo/internal/ui/dashboard"
	"github.com/nhle/geotodo/internal/ui/detail"
	helpview "github.com/nhle/geotodo/internal/ui/help"
	"github.com/nhle/geotodo/internal/ui/mapview"
	"github.com/nhle/geotodo/internal/ui/tasklist"
	"github.com/nhle/geotodo/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewTabs ViewState = iota
	ViewDetail
	ViewHelp
	ViewTodoCreate
	ViewTodoEdit
	ViewSettings
)

// Tab is one of the main views reachable from the tab bar.
type Tab int

const (
	TabList Tab = iota
	TabMap
	TabDashboard
	TabCategories
)

var tabNames = []string{"List", "Map", "Dashboard", "Categories"}

// Options configures the root model.
type Options struct {
	PageSize int
	Debounce time.Duration
	Logger   *log.Logger

	// Config seeds the settings view. ConfigPath is where it saves; empty
	// keeps changes in memory.
	Config     *model.AppConfig
	ConfigPath string
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg *model.AppConfig, path string, logger *log.Logger) Options {
	return Options{
		PageSize:   cfg.Query.PageSize,
		Debounce:   time.Duration(cfg.Query.DebounceMs) * time.Millisecond,
		Logger:     logger,
		Config:     cfg,
		ConfigPath: path,
	}
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	activeTab    Tab
	layout       ui.Layout
	store        store.Store
	logger       *log.Logger
	keys         *KeyMap
	taskList     tasklist.Model
	mapView      mapview.Model
	dashboard    dashboard.Model
	categories   categories.Model
	palette      command.Model
	paletteOpen  bool
	settings     configview.Model
	detail       detail.Model
	helpView     helpview.Model
	todoFormView todoform.Model
	todos        []model.Todo
	statusMsg    string
	errMsg       string
	ready        bool
}

// New creates a new root application model with the given store.
func New(s store.Store, opts Options) Model {
	keys := DefaultKeyMap()
	if opts.PageSize < 1 {
		opts.PageSize = query.DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	cfg := model.DefaultAppConfig()
	if opts.Config != nil {
		c := *opts.Config
		cfg = &c
	}
	cfg.Query.PageSize = opts.PageSize
	cfg.Query.DebounceMs = int(opts.Debounce / time.Millisecond)

	return Model{
		currentView:  ViewTabs,
		activeTab:    TabList,
		store:        s,
		logger:       opts.Logger,
		keys:         keys,
		taskList:     tasklist.New(keys, opts.PageSize, opts.Debounce, 80, 24),
		mapView:      mapview.New(keys, 80, 24),
		dashboard:    dashboard.New(80, 24),
		categories:   categories.New(s, keys, 80, 24),
		palette:      command.New(80, 24),
		settings:     configview.New(*cfg, opts.ConfigPath, keys, 80, 24),
		detail:       detail.New(keys, 80, 24),
		helpView:     helpview.New(keys, 80, 24),
		todoFormView: todoform.New(80, 24),
	}
}

// Init loads the initial collection.
func (m Model) Init() tea.Cmd {
	return m.loadTodos()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.mapView.SetSize(contentWidth, contentHeight)
		m.dashboard.SetSize(contentWidth, contentHeight)
		m.categories.SetSize(contentWidth, contentHeight)
		m.palette.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.todoFormView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case todosLoadedMsg:
		if msg.err != nil {
			return m, m.fail("loading todos", msg.err)
		}
		m.setTodos(msg.todos)
		return m, nil

	case todoCreatedResultMsg:
		if msg.err != nil {
			return m, m.fail("creating todo", msg.err)
		}
		m.logger.Info("todo created", "id", msg.todo.ID)
		m.statusMsg = fmt.Sprintf("Created #%s", msg.todo.ID)
		return m, m.loadTodos()

	case todoUpdatedResultMsg:
		if msg.err != nil {
			return m, m.fail("updating todo", msg.err)
		}
		m.logger.Info("todo updated", "id", msg.todo.ID, "status", msg.todo.Status)
		m.statusMsg = fmt.Sprintf("Updated #%s", msg.todo.ID)
		if cur, ok := m.detail.Current(); ok && cur.ID == msg.todo.ID {
			m.detail.SetTodo(msg.todo)
		}
		return m, m.loadTodos()

	case todoDeletedResultMsg:
		if msg.err != nil {
			return m, m.fail("deleting todo", msg.err)
		}
		m.logger.Info("todo removed", "id", msg.id)
		m.statusMsg = fmt.Sprintf("Deleted #%s", msg.id)
		if m.currentView == ViewDetail {
			m.currentView = ViewTabs
		}
		return m, m.loadTodos()

	case todoEditReadyMsg:
		if msg.err != nil {
			m.currentView = ViewTabs
			return m, m.fail("loading todo", msg.err)
		}
		return m, m.todoFormView.StartEdit(*msg.todo)

	case tasklist.SelectedTodoMsg:
		return m, m.openDetail(msg.TodoID)

	case mapview.SelectedMarkerMsg:
		return m, m.openDetail(msg.TodoID)

	case detail.BackMsg:
		m.currentView = ViewTabs
		return m, nil

	case detail.ActionMsg:
		return m, m.handleDetailAction(msg)

	case todoform.TodoCreatedMsg:
		m.currentView = ViewTabs
		return m, m.createTodo(msg.Fields)

	case todoform.TodoUpdatedMsg:
		m.currentView = m.previousView
		return m, m.updateTodo(msg.ID, msg.Patch)

	case todoform.TodoFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case categories.OpenCategoryMsg:
		m.taskList.SetSearch(msg.Category)
		m.activeTab = TabList
		return m, nil

	case categories.CategoriesChangedMsg:
		m.categories, _ = m.categories.Update(msg)
		if msg.Err != nil {
			return m, tea.Batch(m.fail("updating category", msg.Err), m.loadTodos())
		}
		m.statusMsg = fmt.Sprintf("Updated %d todos", msg.Changed)
		return m, m.loadTodos()

	case command.CommandMsg:
		m.closePalette()
		return m, m.runCommand(msg.Command)

	case command.CommandErrMsg:
		m.closePalette()
		return m, m.fail("command", msg.Err)

	case command.CancelMsg:
		m.closePalette()
		return m, nil

	case configview.SettingsSavedMsg:
		m.applySettings(msg.Config)
		if msg.Err != nil {
			return m, m.fail("saving settings", msg.Err)
		}
		m.statusMsg = "Settings saved"
		return m, nil

	case configview.ConfigDoneMsg:
		m.currentView = ViewTabs
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleKey processes global keys. It reports false when the key should
// fall through to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	if m.paletteOpen {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd, true
	}

	// Text inputs own every other key.
	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit, ViewSettings:
		return m, nil, false
	}
	if m.currentView == ViewTabs && m.tabCapturesKeys() {
		return m, nil, false
	}

	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.helpView.SetContext(m.helpContext())
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case m.currentView == ViewHelp && key.Matches(msg, m.keys.Back):
		m.currentView = m.previousView
		return m, nil, true
	}

	if m.currentView != ViewTabs {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % Tab(len(tabNames))
		return m, nil, true

	case key.Matches(msg, m.keys.TabList):
		m.activeTab = TabList
		return m, nil, true

	case key.Matches(msg, m.keys.TabMap):
		m.activeTab = TabMap
		return m, nil, true

	case key.Matches(msg, m.keys.TabDashboard):
		m.activeTab = TabDashboard
		return m, nil, true

	case key.Matches(msg, m.keys.TabCategories):
		m.activeTab = TabCategories
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.paletteOpen = true
		return m, m.palette.Focus(), true

	case key.Matches(msg, m.keys.Settings):
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return m, m.settings.Start(), true

	case key.Matches(msg, m.keys.New):
		m.previousView = m.currentView
		m.currentView = ViewTodoCreate
		return m, m.todoFormView.StartCreate(), true
	}

	if m.activeTab != TabList {
		return m, nil, false
	}

	todo, ok := m.taskList.Selected()
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		m.previousView = m.currentView
		m.currentView = ViewTodoEdit
		return m, m.startEditTodo(todo.ID), true

	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleTodoComplete(todo), true

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteTodo(todo.ID), true
	}

	return m, nil, false
}

// tabCapturesKeys reports whether the active tab has a focused input.
func (m Model) tabCapturesKeys() bool {
	switch m.activeTab {
	case TabList:
		return m.taskList.Searching()
	case TabCategories:
		return m.categories.Editing()
	}
	return false
}

func (m *Model) closePalette() {
	m.paletteOpen = false
	m.palette.Blur()
}

// runCommand executes a line typed into the command palette.
func (m *Model) runCommand(c command.Command) tea.Cmd {
	m.logger.Debug("command", "name", c.Name, "arg", c.Arg)
	switch c.Name {
	case command.CmdPage:
		m.activeTab = TabList
		m.taskList.SetPage(c.N)
	case command.CmdSearch:
		m.activeTab = TabList
		m.taskList.SetSearch(c.Arg)
	case command.CmdShow:
		return m.openDetail(c.Arg)
	case command.CmdDone:
		return m.updateTodo(c.Arg, model.TodoPatch{Completed: model.BoolPtr(true)})
	case command.CmdDelete:
		return m.deleteTodo(c.Arg)
	case command.CmdTab:
		tab, ok := parseTab(c.Arg)
		if !ok {
			return m.fail("command", fmt.Errorf("unknown tab %q", c.Arg))
		}
		m.activeTab = tab
	case command.CmdQuit:
		return tea.Quit
	}
	return nil
}

// parseTab accepts a tab name or its 1-based number.
func parseTab(s string) (Tab, bool) {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(tabNames) {
		return Tab(n - 1), true
	}
	for i, name := range tabNames {
		if strings.EqualFold(name, s) {
			return Tab(i), true
		}
	}
	return 0, false
}

// applySettings pushes saved settings into the running views.
func (m *Model) applySettings(cfg model.AppConfig) {
	if cfg.Query.PageSize != m.taskList.PageSize() {
		m.taskList.SetPageSize(cfg.Query.PageSize)
	}
	m.taskList.SetDebounce(time.Duration(cfg.Query.DebounceMs) * time.Millisecond)
	m.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	theme.Apply(cfg.Display.Theme)
}

func (m *Model) openDetail(id string) tea.Cmd {
	m.previousView = ViewTabs
	m.currentView = ViewDetail
	m.detail.SetLoading(true)
	return m.loadTodoDetail(id)
}

func (m *Model) handleDetailAction(msg detail.ActionMsg) tea.Cmd {
	switch msg.Action {
	case detail.ActionEdit:
		m.previousView = ViewDetail
		m.currentView = ViewTodoEdit
		return m.startEditTodo(msg.TodoID)
	case detail.ActionToggle:
		todo, ok := m.detail.Current()
		if !ok {
			return nil
		}
		return m.toggleTodoComplete(*todo)
	case detail.ActionDelete:
		return m.deleteTodo(msg.TodoID)
	default:
		return nil
	}
}

// fail records err for the status bar.
func (m *Model) fail(action string, err error) tea.Cmd {
	m.logger.Error(action, "err", err)
	m.statusMsg = ""
	m.errMsg = fmt.Sprintf("%s: %v", action, err)
	return nil
}

// setTodos fans the collection out to every view that derives from it.
func (m *Model) setTodos(todos []model.Todo) {
	m.todos = todos
	m.taskList.SetTodos(todos)
	m.mapView.SetTodos(todos)
	m.dashboard.SetTodos(todos)
	m.categories.SetTodos(todos)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewTabs:
		switch m.activeTab {
		case TabList:
			m.taskList, cmd = m.taskList.Update(msg)
		case TabMap:
			m.mapView, cmd = m.mapView.Update(msg)
		case TabDashboard:
			m.dashboard, cmd = m.dashboard.Update(msg)
		case TabCategories:
			m.categories, cmd = m.categories.Update(msg)
		}
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewTodoCreate, ViewTodoEdit:
		m.todoFormView, cmd = m.todoFormView.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	if m.paletteOpen {
		if _, ok := msg.(tea.KeyMsg); !ok {
			var paletteCmd tea.Cmd
			m.palette, paletteCmd = m.palette.Update(msg)
			cmd = tea.Batch(cmd, paletteCmd)
		}
	}

	// The list's debounce ticks must reach it even while another view is up.
	if _, ok := msg.(tea.KeyMsg); !ok && !(m.currentView == ViewTabs && m.activeTab == TabList) {
		var listCmd tea.Cmd
		m.taskList, listCmd = m.taskList.Update(msg)
		cmd = tea.Batch(cmd, listCmd)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	summary := query.Summarize(m.todos)
	header := m.layout.RenderHeader(
		"GeoTodo",
		fmt.Sprintf("%d todos · %d done", summary.Total, summary.Done),
	)
	tabs := m.layout.RenderTabs(tabNames, int(m.activeTab))
	content := m.renderContent()
	hints := m.keyHints()
	if m.paletteOpen {
		hints = m.palette.View()
	}
	statusBar := m.layout.RenderStatusBar(hints)

	return m.layout.RenderWithFrame(header, tabs, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTabs:
		switch m.activeTab {
		case TabMap:
			return m.mapView.View()
		case TabDashboard:
			return m.dashboard.View()
		case TabCategories:
			return m.categories.View()
		default:
			return m.taskList.View()
		}
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewTodoCreate, ViewTodoEdit:
		return m.todoFormView.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

// helpContext maps the current screen to the help section shown first.
func (m Model) helpContext() helpview.Context {
	if m.currentView == ViewDetail {
		return helpview.ContextDetail
	}
	switch m.activeTab {
	case TabMap:
		return helpview.ContextMap
	case TabDashboard:
		return helpview.ContextDashboard
	case TabCategories:
		return helpview.ContextCategories
	default:
		return helpview.ContextList
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show errors prominently when present.
	if m.errMsg != "" {
		return theme.ErrorStyle.Render(m.errMsg)
	}

	prefix := ""
	if m.statusMsg != "" {
		prefix = m.statusMsg + " | "
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return prefix + "esc back | e edit | x toggle done | d delete | j/k scroll"
	case ViewTodoCreate, ViewTodoEdit, ViewSettings:
		return "enter next | shift+tab back | esc cancel"
	}

	switch m.activeTab {
	case TabMap:
		return prefix + "enter open | tab next view | n new | ? help | q quit"
	case TabDashboard:
		return prefix + "tab next view | n new | : command | ? help | q quit"
	case TabCategories:
		return prefix + "enter open | r rename | d clear | tab next view | ? help | q quit"
	default:
		if m.taskList.Searching() {
			return "type to search | enter keep | esc clear"
		}
		return prefix + "n new | e edit | x done | d delete | / search | h/l page | : command | ? help | q quit"
	}
}
