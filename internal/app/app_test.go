package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/store"
	configview "github.com/nhle/geotodo/internal/ui/config"
	"github.com/nhle/geotodo/internal/ui/detail"
	helpview "github.com/nhle/geotodo/internal/ui/help"
	"github.com/nhle/geotodo/tests/testutil"
)

// drive feeds msg to m and then runs every resulting command synchronously,
// feeding the produced messages back in until nothing is left.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, bool) {
	t.Helper()

	queue := []tea.Msg{msg}
	quit := false
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("message loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]

		if _, ok := next.(tea.QuitMsg); ok {
			quit = true
			continue
		}
		if batch, ok := next.(tea.BatchMsg); ok {
			for _, c := range batch {
				if c != nil {
					queue = append(queue, c())
				}
			}
			continue
		}

		updated, cmd := m.Update(next)
		m = updated.(Model)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
	return m, quit
}

// press delivers a key without running the commands it returns, which for
// text inputs are cursor blinks.
func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, runes(string(r)))
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, s store.Store) Model {
	t.Helper()
	m := New(s, Options{PageSize: 5})
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = drive(t, m, m.Init()())
	return m
}

func TestInit_LoadsEveryView(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "one", "two", "three")
	if _, err := s.Create(context.Background(), model.TodoFields{
		Title:    "located",
		Location: &model.Location{Latitude: 1, Longitude: 2},
	}); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, s)

	if got := len(m.todos); got != 4 {
		t.Fatalf("todos = %d, want 4", got)
	}
	if got := m.taskList.Result().FilteredCount; got != 4 {
		t.Errorf("list count = %d, want 4", got)
	}
	if got := len(m.mapView.Markers()); got != 1 {
		t.Errorf("markers = %d, want 1", got)
	}
	if got := m.dashboard.Summary().Total; got != 4 {
		t.Errorf("dashboard total = %d, want 4", got)
	}
	if out := m.View(); !strings.Contains(out, "4 todos") {
		t.Errorf("header missing count:\n%s", out)
	}
}

func TestToggle_MarksSelectedDone(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedTitles(t, s, "first", "second")
	m := newTestModel(t, s)

	m, _ = drive(t, m, runes("x"))

	got, err := s.Get(context.Background(), "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusDone || !got.Completed {
		t.Errorf("after toggle: status=%s completed=%v", got.Status, got.Completed)
	}
	if m.statusMsg != "Updated #1" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	// Toggling again reopens it.
	m, _ = drive(t, m, runes("x"))
	got, _ = s.Get(context.Background(), "1")
	if got.Status != model.StatusPending || got.Completed {
		t.Errorf("after second toggle: status=%s completed=%v", got.Status, got.Completed)
	}
}

func TestDelete_RemovesSelected(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "first", "second")
	m := newTestModel(t, s)

	m, _ = drive(t, m, runes("d"))

	todos, _ := s.List(context.Background())
	if len(todos) != 1 || todos[0].ID != "2" {
		t.Fatalf("remaining = %+v, want only #2", todos)
	}
	if got := m.taskList.Result().TotalCount; got != 1 {
		t.Errorf("list total = %d, want 1", got)
	}
}

func TestSelect_OpensDetail(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "first")
	m := newTestModel(t, s)

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.currentView != ViewDetail {
		t.Fatalf("view = %d, want detail", m.currentView)
	}
	cur, ok := m.detail.Current()
	if !ok || cur.ID != "1" {
		t.Fatalf("detail todo = %+v", cur)
	}

	m, _ = drive(t, m, detail.BackMsg{})
	if m.currentView != ViewTabs {
		t.Errorf("view = %d, want tabs", m.currentView)
	}
}

func TestDetailDelete_ReturnsToTabs(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "first")
	m := newTestModel(t, s)

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = drive(t, m, runes("d"))

	if m.currentView != ViewTabs {
		t.Errorf("view = %d, want tabs", m.currentView)
	}
	if len(m.todos) != 0 {
		t.Errorf("todos = %d, want 0", len(m.todos))
	}
}

func TestTabs(t *testing.T) {
	m := newTestModel(t, testutil.NewMemoryStore(t))

	tests := []struct {
		key  tea.KeyMsg
		want Tab
	}{
		{runes("2"), TabMap},
		{runes("3"), TabDashboard},
		{tea.KeyMsg{Type: tea.KeyTab}, TabCategories},
		{tea.KeyMsg{Type: tea.KeyTab}, TabList},
		{runes("4"), TabCategories},
		{runes("1"), TabList},
	}
	for _, tt := range tests {
		m, _ = drive(t, m, tt.key)
		if m.activeTab != tt.want {
			t.Errorf("after %q: tab = %d, want %d", tt.key.String(), m.activeTab, tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, testutil.NewMemoryStore(t))

	if _, quit := drive(t, m, runes("q")); !quit {
		t.Error("q did not quit from the list")
	}

	// While searching, q is text.
	searching, _ := drive(t, m, runes("/"))
	if !searching.taskList.Searching() {
		t.Fatal("expected search mode")
	}
	if _, quit := drive(t, searching, runes("q")); quit {
		t.Error("q quit while searching")
	}
	if _, quit := drive(t, searching, tea.KeyMsg{Type: tea.KeyCtrlC}); !quit {
		t.Error("ctrl+c did not quit while searching")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, testutil.NewMemoryStore(t))

	m, _ = drive(t, m, runes("?"))
	if m.currentView != ViewHelp {
		t.Fatalf("view = %d, want help", m.currentView)
	}
	m, _ = drive(t, m, runes("?"))
	if m.currentView != ViewTabs {
		t.Errorf("view = %d, want tabs", m.currentView)
	}
}

func TestHelpFollowsScreen(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "first")
	m := newTestModel(t, s)

	tests := []struct {
		setup []tea.KeyMsg
		want  helpview.Context
		shows string
	}{
		{nil, helpview.ContextList, "toggle done"},
		{[]tea.KeyMsg{runes("2")}, helpview.ContextMap, "open marker's todo"},
		{[]tea.KeyMsg{runes("4")}, helpview.ContextCategories, "rename category"},
		{[]tea.KeyMsg{runes("1"), {Type: tea.KeyEnter}}, helpview.ContextDetail, "scroll down"},
	}
	for _, tt := range tests {
		cur := m
		for _, k := range tt.setup {
			cur, _ = drive(t, cur, k)
		}
		cur, _ = drive(t, cur, runes("?"))
		if cur.currentView != ViewHelp {
			t.Fatalf("view = %d, want help", cur.currentView)
		}
		if got := cur.helpView.Context(); got != tt.want {
			t.Errorf("context = %d, want %d", got, tt.want)
		}
		out := cur.View()
		if !strings.Contains(out, tt.shows) {
			t.Errorf("help for context %d missing %q", tt.want, tt.shows)
		}
		if !strings.Contains(out, "Commands (:)") {
			t.Errorf("help for context %d missing commands", tt.want)
		}
	}
}

func TestStoreError_ShownInStatusBar(t *testing.T) {
	m := newTestModel(t, testutil.NewMemoryStore(t))

	m, _ = drive(t, m, todoDeletedResultMsg{id: "9", err: errors.New("todo not found: 9")})

	if !strings.Contains(m.errMsg, "todo not found: 9") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if out := m.View(); !strings.Contains(out, "deleting todo") {
		t.Errorf("status bar missing error:\n%s", out)
	}
}

func TestCommandPalette(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "a", "b", "c", "d", "e", "f", "g")
	m := newTestModel(t, s)

	m = press(m, runes(":"))
	if !m.paletteOpen {
		t.Fatal("palette not open")
	}
	m = typeText(m, "page 2")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.paletteOpen {
		t.Error("palette still open")
	}
	if got := m.taskList.Page(); got != 2 {
		t.Errorf("page = %d, want 2", got)
	}

	m = typeText(press(m, runes(":")), "done 3")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	got, _ := s.Get(context.Background(), "3")
	if !got.Completed {
		t.Error("done 3 did not complete todo 3")
	}

	m = typeText(press(m, runes(":")), "done 99")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.errMsg, "todo not found: 99") {
		t.Errorf("errMsg = %q", m.errMsg)
	}

	m = typeText(press(m, runes(":")), "tab dashboard")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.activeTab != TabDashboard {
		t.Errorf("tab = %d, want dashboard", m.activeTab)
	}

	m = typeText(press(m, runes(":")), "bogus")
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.errMsg, "unknown command") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestCategoryOpensFilteredList(t *testing.T) {
	s := testutil.NewMemoryStore(t)
	for _, f := range []model.TodoFields{
		{Title: "report", Category: "work"},
		{Title: "laundry", Category: "home"},
		{Title: "deploy", Category: "work"},
	} {
		if _, err := s.Create(context.Background(), f); err != nil {
			t.Fatal(err)
		}
	}
	m := newTestModel(t, s)

	m, _ = drive(t, m, runes("4"))
	// Categories sort by name: home, work.
	m, _ = drive(t, m, runes("j"))
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.activeTab != TabList {
		t.Fatalf("tab = %d, want list", m.activeTab)
	}
	if got := m.taskList.Search(); got != "work" {
		t.Errorf("search = %q, want work", got)
	}
	if got := m.taskList.Result().FilteredCount; got != 2 {
		t.Errorf("filtered = %d, want 2", got)
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in   string
		want Tab
		ok   bool
	}{
		{"map", TabMap, true},
		{"Categories", TabCategories, true},
		{"1", TabList, true},
		{"5", 0, false},
		{"calendar", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTab(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseTab(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSettingsSaved_AppliesToSession(t *testing.T) {
	orig := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(orig) })

	s := testutil.NewMemoryStore(t)
	testutil.SeedTitles(t, s, "a", "b", "c")
	m := newTestModel(t, s)

	cfg := *model.DefaultAppConfig()
	cfg.Query.PageSize = 2
	cfg.Display.Theme = model.ThemeLight
	m, _ = drive(t, m, configview.SettingsSavedMsg{Config: cfg})

	if m.statusMsg != "Settings saved" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if got := m.taskList.PageSize(); got != 2 {
		t.Errorf("page size = %d, want 2", got)
	}
	if lipgloss.HasDarkBackground() {
		t.Error("light theme not applied")
	}
}
