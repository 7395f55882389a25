// Package dashboard renders the statistics tab: summary cards plus bar
// charts by status and priority.
package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/theme"
)

// Model is the dashboard tab. It has no interaction of its own.
type Model struct {
	summary query.Summary
	width   int
	height  int
}

// New creates an empty dashboard.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetTodos recomputes the summary.
func (m *Model) SetTodos(todos []model.Todo) {
	m.summary = query.Summarize(todos)
}

// Summary returns the figures currently displayed.
func (m Model) Summary() query.Summary { return m.summary }

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update is a no-op; the dashboard only reacts to SetTodos.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) { return m, nil }

// View renders the cards and charts.
func (m Model) View() string {
	s := m.summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", s.Total, theme.ColorBlue),
		card("Pending", s.Pending, theme.StatusColor(model.StatusPending)),
		card("In progress", s.InProgress, theme.StatusColor(model.StatusInProgress)),
		card("Done", s.Done, theme.StatusColor(model.StatusDone)),
	)

	rate := lipgloss.NewStyle().Padding(1, 1, 0, 1).Render(fmt.Sprintf(
		"Completion rate %s%%   ·   %d of %d located",
		lipgloss.NewStyle().Bold(true).Render(s.CompletionRateString()),
		s.Located, s.Total,
	))

	barWidth := min(max(m.width-30, 10), 50)

	statusLines := []string{sectionTitle("By status")}
	for _, sc := range s.ByStatus() {
		statusLines = append(statusLines, barLine(
			theme.StatusLabel(sc.Status), sc.Count, s.Total, barWidth, theme.StatusColor(sc.Status),
		))
	}

	priorityLines := []string{sectionTitle("By priority")}
	for _, pc := range s.ByPriority() {
		priorityLines = append(priorityLines, barLine(
			theme.PriorityLabel(pc.Priority), pc.Count, s.Total, barWidth, theme.PriorityColor(pc.Priority),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		rate,
		"",
		strings.Join(statusLines, "\n"),
		"",
		strings.Join(priorityLines, "\n"),
	)
}

func card(label string, value int, color lipgloss.AdaptiveColor) string {
	return theme.CardStyle.
		BorderForeground(color).
		Render(
			theme.HelpStyle.UnsetItalic().Render(label) + "\n" +
				lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprint(value)),
		)
}

func sectionTitle(s string) string {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(s)
}

func barLine(label string, count, total, width int, color lipgloss.AdaptiveColor) string {
	return fmt.Sprintf(" %-12s %s %d",
		label,
		lipgloss.NewStyle().Foreground(color).Render(Bar(count, total, width)),
		count,
	)
}

// Bar renders count/total as a bar of at most width cells. Any non-zero
// count gets at least one cell.
func Bar(count, total, width int) string {
	if total <= 0 || count <= 0 || width <= 0 {
		return ""
	}
	n := count * width / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", min(n, width))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
