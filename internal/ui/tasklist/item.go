package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoItem) Title() string { return i.Todo.Title }

// Description returns a short summary line for the list.
func (i TodoItem) Description() string {
	parts := []string{string(i.Todo.Status), string(i.Todo.Priority)}
	if i.Todo.Category != "" {
		parts = append(parts, i.Todo.Category)
	}
	parts = append(parts, relativeTime(i.Todo.UpdatedAt))
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering todo rows.
type ItemDelegate struct {
	// now is injectable so overdue markers render deterministically.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderTodo(ti.Todo, index == m.Index()))
}

func (d ItemDelegate) renderTodo(todo model.Todo, isSelected bool) string {
	now := time.Now
	if d.now != nil {
		now = d.now
	}

	prefix := "○"
	if todo.Completed {
		prefix = "✓"
	}

	statusBadge := theme.StatusStyle(todo.Status).Render(theme.StatusLabel(todo.Status))
	priBadge := theme.PriorityStyle(todo.Priority).Render(priorityLabel(todo.Priority))

	category := ""
	if todo.Category != "" {
		category = theme.HelpStyle.Render(" #" + todo.Category)
	}

	pin := ""
	if todo.HasLocation() {
		pin = theme.LocationBadgeStyle.Render(" ⌖")
	}

	dueDateStr := ""
	if todo.DueDate != "" {
		dueDateStr = theme.DueDateStyle.Render(" " + formatDueDate(todo.DueDate))
	}

	overdueStr := ""
	if todo.IsOverdue(now()) {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s%s",
		prefix, statusBadge, priBadge, todo.Title,
		category, pin, dueDateStr, overdueStr,
	)

	// Apply dimmed style for completed items
	if todo.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// formatDueDate shortens YYYY-MM-DD to "Jan 02"; unparsable dates are shown
// as stored.
func formatDueDate(s string) string {
	t, err := time.Parse(model.DueDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 02")
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!! "
	case model.PriorityLow:
		return "!  "
	default:
		return "?  "
	}
}
