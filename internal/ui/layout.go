package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabsHeight      int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1; the tab row takes 2.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabsHeight:      2,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header, tabs, and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.TabsHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top header bar with a title and a right-aligned
// summary.
func (l Layout) RenderHeader(title string, summary string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	summaryRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(summary)

	gap := max(l.Width-
		lipgloss.Width(titleRendered)-
		lipgloss.Width(summaryRendered), 0)

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		summaryRendered,
	)
}

// RenderTabs renders the view switcher with the active tab highlighted.
func (l Layout) RenderTabs(names []string, active int) string {
	rendered := make([]string, len(names))
	for i, name := range names {
		if i == active {
			rendered[i] = theme.ActiveTabStyle.Render(name)
		} else {
			rendered[i] = theme.InactiveTabStyle.Render(name)
		}
	}
	return lipgloss.NewStyle().
		MaxWidth(l.Width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := max(l.Width-lipgloss.Width(rendered), 0)

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, tabs, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	tabs string,
	content string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		content,
		statusBar,
	)
}
