package todoform

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/theme"
	"github.com/nhle/geotodo/internal/validation"
)

// TodoCreatedMsg is dispatched when the create form is submitted.
type TodoCreatedMsg struct {
	Fields model.TodoFields
}

// TodoUpdatedMsg is dispatched when the edit form is submitted.
type TodoUpdatedMsg struct {
	ID    string
	Patch model.TodoPatch
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	status      model.Status
	dueDate     string
	category    string
	latitude    string
	longitude   string
	address     string
}

func (fb *formBindings) reset() {
	*fb = formBindings{
		priority: model.PriorityMedium,
		status:   model.StatusPending,
	}
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	err      error
	width    int
	height   int
}

// New creates a new todo form model.
func New(width, height int) Model {
	fb := &formBindings{}
	fb.reset()
	return Model{
		fb:     fb,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new todo.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.err = nil
	m.fb.reset()
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editMode = true
	m.editID = todo.ID
	m.err = nil
	m.fb.reset()
	m.fb.title = todo.Title
	m.fb.description = todo.Description
	m.fb.priority = todo.Priority
	m.fb.status = todo.Status
	m.fb.dueDate = todo.DueDate
	m.fb.category = todo.Category
	if todo.Location != nil {
		m.fb.latitude = formatCoord(todo.Location.Latitude)
		m.fb.longitude = formatCoord(todo.Location.Longitude)
		m.fb.address = todo.Location.Address
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.editMode {
		titleText = "Edit Todo"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.err != nil {
		content += theme.ErrorStyle.Render(m.err.Error()) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// Err returns the validation error from the last submit, if any.
func (m Model) Err() error { return m.err }

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	statusOpts := make([]huh.Option[model.Status], 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		statusOpts = append(statusOpts, huh.NewOption(theme.StatusLabel(s), s))
	}
	priorityOpts := make([]huh.Option[model.Priority], 0, len(model.Priorities()))
	for _, p := range model.Priorities() {
		priorityOpts = append(priorityOpts, huh.NewOption(theme.PriorityLabel(p), p))
	}

	details := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateTitle),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(priorityOpts...).
			Value(&m.fb.priority),
		huh.NewSelect[model.Status]().
			Title("Status").
			Options(statusOpts...).
			Value(&m.fb.status),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Category").
			Placeholder("Optional").
			Value(&m.fb.category),
	)

	location := huh.NewGroup(
		huh.NewInput().
			Title("Latitude").
			Placeholder(formatCoord(query.DefaultCenterLatitude)+" (leave empty for no location)").
			Value(&m.fb.latitude).
			Validate(validateCoord(-90, 90)),
		huh.NewInput().
			Title("Longitude").
			Placeholder(formatCoord(query.DefaultCenterLongitude)).
			Value(&m.fb.longitude).
			Validate(validateCoord(-180, 180)),
		huh.NewInput().
			Title("Address").
			Placeholder("Optional").
			Value(&m.fb.address),
	).Title("Location")

	return huh.NewForm(details, location).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

// handleSubmit validates the bindings as a whole. On failure the form is
// rebuilt with the entered values so the user can fix them.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	loc, err := m.fb.location()
	if err == nil {
		if m.editMode {
			patch := m.fb.patch(loc)
			if err = validation.ValidatePatch(patch); err == nil {
				id := m.editID
				return m, func() tea.Msg { return TodoUpdatedMsg{ID: id, Patch: patch} }
			}
		} else {
			fields := m.fb.fields(loc)
			if err = validation.ValidateFields(fields); err == nil {
				return m, func() tea.Msg { return TodoCreatedMsg{Fields: fields} }
			}
		}
	}

	m.err = err
	m.form = m.buildForm()
	return m, m.form.Init()
}

func (fb *formBindings) fields(loc *model.Location) model.TodoFields {
	return model.TodoFields{
		Title:       strings.TrimSpace(fb.title),
		Description: strings.TrimSpace(fb.description),
		Status:      fb.status,
		Priority:    fb.priority,
		DueDate:     strings.TrimSpace(fb.dueDate),
		Category:    strings.TrimSpace(fb.category),
		Location:    loc,
	}
}

// patch supplies every field; the form always edits the whole todo.
func (fb *formBindings) patch(loc *model.Location) model.TodoPatch {
	f := fb.fields(loc)
	return model.TodoPatch{
		Title:         &f.Title,
		Description:   &f.Description,
		Status:        &f.Status,
		Priority:      &f.Priority,
		DueDate:       &f.DueDate,
		Category:      &f.Category,
		Location:      loc,
		ClearLocation: loc == nil,
	}
}

var errPartialLocation = errors.New("location needs both latitude and longitude")

// location parses the coordinate inputs. Both empty means no location.
func (fb *formBindings) location() (*model.Location, error) {
	latStr := strings.TrimSpace(fb.latitude)
	lngStr := strings.TrimSpace(fb.longitude)
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errPartialLocation
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("latitude must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, errors.New("longitude must be a number")
	}
	return &model.Location{
		Latitude:  lat,
		Longitude: lng,
		Address:   strings.TrimSpace(fb.address),
	}, nil
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-6, 10)
}

func validateTitle(s string) error {
	err := validation.ValidateFields(model.TodoFields{Title: strings.TrimSpace(s)})
	return fieldError(err, "title")
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	err := validation.ValidateFields(model.TodoFields{Title: "-", DueDate: s})
	return fieldError(err, "dueDate")
}

func validateCoord(lo, hi float64) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("must be a number")
		}
		if v < lo || v > hi {
			return errors.New("must be between " + formatCoord(lo) + " and " + formatCoord(hi))
		}
		return nil
	}
}

// fieldError unwraps the error for one field so huh shows a single line.
func fieldError(err error, path string) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		if ferr := verrs.Field(path); ferr != nil {
			var ve *validation.ValidationError
			if errors.As(ferr, &ve) {
				return ve.Err
			}
			return ferr
		}
		return nil
	}
	return err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
