package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorTeal    = lipgloss.AdaptiveColor{Dark: "#4ECDC4", Light: "#2C7A7B"}
	ColorSky     = lipgloss.AdaptiveColor{Dark: "#45B7D1", Light: "#2B6CB0"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply forces the dark or light side of the adaptive colors for
// model.ThemeDark and model.ThemeLight. Any other name leaves the current
// choice alone, which until the first Apply is the terminal's own.
func Apply(name string) {
	switch name {
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStyle renders store and validation errors in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle fades completed todos.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// OverdueStyle flags todos whose due date has passed.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueDateStyle renders due dates in list rows.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// LocationBadgeStyle marks todos pinned to the map.
var LocationBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorTeal)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ActiveTabStyle and InactiveTabStyle render the view switcher.
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorBlue).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Padding(0, 2).
				MarginBottom(1)
)

// CardStyle frames a single dashboard figure.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder).
	Padding(0, 2).
	Width(18).
	Align(lipgloss.Center)

// StatusColor is the color for a todo status. The palette follows the
// dashboard charts.
func StatusColor(status model.Status) lipgloss.AdaptiveColor {
	switch status {
	case model.StatusPending:
		return ColorRed
	case model.StatusInProgress:
		return ColorTeal
	case model.StatusDone:
		return ColorSky
	default:
		return ColorGray
	}
}

// StatusStyle returns a color-coded style for the given status.
func StatusStyle(status model.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(StatusColor(status))
}

// PriorityColor is the color for a todo priority.
func PriorityColor(priority model.Priority) lipgloss.AdaptiveColor {
	switch priority {
	case model.PriorityHigh:
		return ColorRed
	case model.PriorityMedium:
		return ColorYellow
	case model.PriorityLow:
		return ColorGreen
	default:
		return ColorGray
	}
}

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(PriorityColor(priority))
}

// StatusLabel is the human label for a status.
func StatusLabel(status model.Status) string {
	switch status {
	case model.StatusPending:
		return "Pending"
	case model.StatusInProgress:
		return "In progress"
	case model.StatusDone:
		return "Done"
	default:
		return string(status)
	}
}

// PriorityLabel is the human label for a priority.
func PriorityLabel(priority model.Priority) string {
	switch priority {
	case model.PriorityLow:
		return "Low"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityHigh:
		return "High"
	default:
		return string(priority)
	}
}
