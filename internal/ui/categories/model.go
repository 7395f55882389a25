// Package categories is the tab that groups todos by category. A category
// can be opened in the list, renamed across every todo that uses it, or
// cleared from them.
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/store"
	"github.com/nhle/geotodo/internal/theme"
	"github.com/nhle/geotodo/internal/validation"
)

// OpenCategoryMsg asks the parent to show the list searched by Category.
type OpenCategoryMsg struct {
	Category string
}

// CategoriesChangedMsg reports a rename or clear. Changed is the number of
// todos updated before any error.
type CategoriesChangedMsg struct {
	Changed int
	Err     error
}

type mode int

const (
	modeList mode = iota
	modeRename
	modeConfirmClear
)

type formBindings struct {
	name    string
	confirm bool
}

// Model is the Bubble Tea model for the categories tab.
type Model struct {
	mode        mode
	store       store.Store
	keys        *keys.KeyMap
	todos       []model.Todo
	categories  []query.CategoryCount
	selectedIdx int
	form        *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates the categories tab.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		store:  s,
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetTodos recomputes the category counts.
func (m *Model) SetTodos(todos []model.Todo) {
	m.todos = todos
	m.categories = query.Categories(todos)
	if m.selectedIdx >= len(m.categories) {
		m.selectedIdx = max(len(m.categories)-1, 0)
	}
}

// Categories returns the categories currently listed.
func (m Model) Categories() []query.CategoryCount { return m.categories }

// Selected returns the highlighted category.
func (m Model) Selected() (query.CategoryCount, bool) {
	if m.selectedIdx >= len(m.categories) {
		return query.CategoryCount{}, false
	}
	return m.categories[m.selectedIdx], true
}

// Editing reports whether a form has focus.
func (m Model) Editing() bool { return m.mode != modeList }

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CategoriesChangedMsg:
		m.mode = modeList
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeList {
			return m.handleListKey(msg)
		}
		if key.Matches(msg, m.keys.Back) {
			m.mode = modeList
			return m, nil
		}
	}
	return m.updateForm(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.categories) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.categories)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.categories) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.categories) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		c, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenCategoryMsg{Category: c.Category} }

	case key.Matches(msg, m.keys.Rename):
		c, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.fb.name = c.Category
		m.form = m.buildRenameForm()
		m.mode = modeRename
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); !ok {
			return m, nil
		}
		m.fb.confirm = false
		m.form = m.buildConfirmForm()
		m.mode = modeConfirmClear
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildRenameForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Placeholder("e.g. work").
				Value(&m.fb.name).
				Validate(validateName),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	c, _ := m.Selected()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear category %q?", c.Category)).
				Description(fmt.Sprintf("%d todos will be left without a category.", c.Count)).
				Affirmative("Yes, clear").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if err := validation.ValidatePatch(model.TodoPatch{Category: &s}); err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			if ferr := verrs.Field("category"); ferr != nil {
				return ferr
			}
		}
		return err
	}
	return nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.mode == modeList {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		c, ok := m.Selected()
		if !ok {
			m.mode = modeList
			return m, nil
		}
		switch m.mode {
		case modeRename:
			name := strings.TrimSpace(m.fb.name)
			if name == c.Category {
				m.mode = modeList
				return m, nil
			}
			return m, m.recategorize(c.Category, name)
		case modeConfirmClear:
			if m.fb.confirm {
				return m, m.recategorize(c.Category, "")
			}
		}
		m.mode = modeList
		return m, nil

	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// recategorize moves every todo in from to the category to. An empty to
// clears the category.
func (m Model) recategorize(from, to string) tea.Cmd {
	s := m.store
	targets := query.InCategory(m.todos, from)
	return func() tea.Msg {
		changed := 0
		for _, t := range targets {
			if _, err := s.Update(context.Background(), t.ID, model.TodoPatch{
				Category: model.StringPtr(to),
			}); err != nil {
				return CategoriesChangedMsg{Changed: changed, Err: err}
			}
			changed++
		}
		return CategoriesChangedMsg{Changed: changed}
	}
}

// View renders the categories tab.
func (m Model) View() string {
	if m.mode != modeList && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No categories yet. Give a todo a category to see it here."))
	} else {
		for i, c := range m.categories {
			label := fmt.Sprintf("#%-20s %3d todos  %3d done", c.Category, c.Count, c.Done)
			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"enter open in list | r rename | d clear",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}
