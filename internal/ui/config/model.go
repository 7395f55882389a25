// Package config is the settings view. It edits the query, log and display
// sections of the app config and writes them back to the config file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/theme"
)

// ConfigMode represents the current state of the settings view.
type ConfigMode int

const (
	ModeForm   ConfigMode = iota // Editing
	ModeSaving                   // Writing the config file
	ModeResult                   // Showing the save result
)

// Limits accepted by the form.
const (
	MaxPageSize   = 50
	MaxDebounceMs = 5000
)

// ConfigDoneMsg signals the settings view should close.
type ConfigDoneMsg struct{}

// SettingsSavedMsg carries the new settings once they are accepted. Err
// is set when writing the file failed; the settings still apply to the
// running session.
type SettingsSavedMsg struct {
	Config model.AppConfig
	Err    error
}

// configWrittenMsg is the internal result of the file write.
type configWrittenMsg struct {
	cfg model.AppConfig
	err error
}

// formBindings holds the string values huh edits.
type formBindings struct {
	pageSize   string
	debounceMs string
	logLevel   string
	theme      string
}

// Model is the settings view.
type Model struct {
	mode    ConfigMode
	cfg     model.AppConfig
	path    string
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	saveErr error
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates the settings view. An empty path applies changes without
// writing them anywhere.
func New(cfg model.AppConfig, path string, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		mode:    ModeForm,
		cfg:     cfg,
		path:    path,
		fb:      &formBindings{},
		spinner: sp,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Start opens the form prefilled with the current settings.
func (m *Model) Start() tea.Cmd {
	m.mode = ModeForm
	m.saveErr = nil
	m.fb.pageSize = strconv.Itoa(m.cfg.Query.PageSize)
	m.fb.debounceMs = strconv.Itoa(m.cfg.Query.DebounceMs)
	m.fb.logLevel = strings.ToLower(m.cfg.Log.Level)
	if m.fb.logLevel == "" {
		m.fb.logLevel = "info"
	}
	m.fb.theme = m.cfg.Display.Theme
	if m.fb.theme == "" {
		m.fb.theme = model.ThemeDefault
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Config returns the settings the view currently holds.
func (m Model) Config() model.AppConfig { return m.cfg }

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case configWrittenMsg:
		m.cfg = msg.cfg
		m.saveErr = msg.err
		m.mode = ModeResult
		return m, func() tea.Msg { return SettingsSavedMsg{Config: msg.cfg, Err: msg.err} }

	case spinner.TickMsg:
		if m.mode == ModeSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeForm && key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return ConfigDoneMsg{} }
		}
		if m.mode == ModeResult {
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
				return m, func() tea.Msg { return ConfigDoneMsg{} }
			}
			return m, nil
		}
	}

	if m.mode != ModeForm || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg, err := m.fb.apply(m.cfg)
		if err != nil {
			m.saveErr = err
			m.mode = ModeResult
			return m, nil
		}
		m.mode = ModeSaving
		return m, tea.Batch(m.spinner.Tick, m.write(cfg))
	case huh.StateAborted:
		return m, func() tea.Msg { return ConfigDoneMsg{} }
	}
	return m, cmd
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todos per page").
				Value(&m.fb.pageSize).
				Validate(intInRange("page size", 1, MaxPageSize)),
			huh.NewInput().
				Title("Search debounce (ms)").
				Description("How long typing must pause before the search applies.").
				Value(&m.fb.debounceMs).
				Validate(intInRange("debounce", 0, MaxDebounceMs)),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&m.fb.logLevel),
				huh.NewSelect[string]().
					Title("Theme").
					Options(
						huh.NewOption("Follow terminal", model.ThemeDefault),
						huh.NewOption("Dark", model.ThemeDark),
						huh.NewOption("Light", model.ThemeLight),
					).
					Value(&m.fb.theme),
		).Title("Settings"),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func intInRange(name string, lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a whole number", name)
		}
		if n < lo || n > hi {
			return fmt.Errorf("%s must be between %d and %d", name, lo, hi)
		}
		return nil
	}
}

// apply returns cfg with the edited values.
func (fb *formBindings) apply(cfg model.AppConfig) (model.AppConfig, error) {
	pageSize, err := strconv.Atoi(strings.TrimSpace(fb.pageSize))
	if err != nil {
		return cfg, fmt.Errorf("page size: %w", err)
	}
	debounce, err := strconv.Atoi(strings.TrimSpace(fb.debounceMs))
	if err != nil {
		return cfg, fmt.Errorf("debounce: %w", err)
	}
	cfg.Query.PageSize = pageSize
	cfg.Query.DebounceMs = debounce
	cfg.Log.Level = fb.logLevel
	cfg.Display.Theme = fb.theme
	return cfg, nil
}

func (m Model) write(cfg model.AppConfig) tea.Cmd {
	path := m.path
	return func() tea.Msg {
		if path == "" {
			return configWrittenMsg{cfg: cfg}
		}
		return configWrittenMsg{cfg: cfg, err: model.SaveConfig(path, &cfg)}
	}
}

// View renders the settings view.
func (m Model) View() string {
	switch m.mode {
	case ModeSaving:
		return lipgloss.NewStyle().Padding(1, 2).Render(m.spinner.View() + " Saving settings...")
	case ModeResult:
		return m.viewResult()
	default:
		if m.form == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
}

func (m Model) viewResult() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	switch {
	case m.saveErr != nil:
		b.WriteString(theme.ErrorStyle.Render(fmt.Sprintf("Could not save: %v", m.saveErr)))
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("The new settings apply until you quit."))
	case m.path == "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("Settings applied."))
	default:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(
			fmt.Sprintf("Saved to %s", m.path),
		))
	}

	fmt.Fprintf(&b, "\n\npage size %d · debounce %dms · log level %s · theme %s",
		m.cfg.Query.PageSize, m.cfg.Query.DebounceMs, m.cfg.Log.Level, m.cfg.Display.Theme)

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render("enter/esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates the dimensions of the view.
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
