// Package mapview shows located todos as a marker table with a coarse plot
// of their positions around the map center.
package mapview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/theme"
)

// SelectedMarkerMsg is sent when the user opens a marker's todo.
type SelectedMarkerMsg struct {
	TodoID string
}

// Model is the map tab.
type Model struct {
	table   table.Model
	keys    *keys.KeyMap
	markers []query.Marker
	width   int
	height  int
}

// New creates an empty map view.
func New(k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorWhite).
		Background(theme.ColorBlue)
	t.SetStyles(styles)

	return Model{
		table:  t,
		keys:   k,
		width:  width,
		height: height,
	}
}

func columns(width int) []table.Column {
	title := max(width-60, 16)
	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Title", Width: title},
		{Title: "Status", Width: 12},
		{Title: "Latitude", Width: 10},
		{Title: "Longitude", Width: 10},
		{Title: "Address", Width: 16},
	}
}

// SetTodos rebuilds the markers from the full collection.
func (m *Model) SetTodos(todos []model.Todo) {
	m.markers = query.Markers(todos)
	rows := make([]table.Row, len(m.markers))
	for i, mk := range m.markers {
		rows[i] = table.Row{
			mk.ID,
			mk.Title,
			theme.StatusLabel(mk.Status),
			fmt.Sprintf("%.4f", mk.Latitude),
			fmt.Sprintf("%.4f", mk.Longitude),
			mk.Address,
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Markers returns the markers currently displayed.
func (m Model) Markers() []query.Marker { return m.markers }

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update handles table navigation and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		if len(m.markers) == 0 {
			return m, nil
		}
		id := m.markers[m.table.Cursor()].ID
		return m, func() tea.Msg { return SelectedMarkerMsg{TodoID: id} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the center line, the plot, and the marker table.
func (m Model) View() string {
	lat, lng := query.Center(m.markers)
	header := theme.HelpStyle.Padding(0, 1).Render(
		fmt.Sprintf("Center %.4f, %.4f · %d located", lat, lng, len(m.markers)),
	)

	if len(m.markers) == 0 {
		empty := lipgloss.NewStyle().
			Width(m.width).
			Height(max(m.height-2, 1)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No todos have a location.\nEdit a todo and enter coordinates to pin it.")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	plot := theme.BorderStyle.Render(Plot(m.markers, plotWidth(m.width), plotHeight(m.height)))
	return lipgloss.JoinVertical(lipgloss.Left, header, plot, m.table.View())
}

// Plot draws markers on a width x height character grid scaled to their
// bounding box. North is up. Cells holding several markers show their count.
func Plot(markers []query.Marker, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}

	minLat, maxLat, minLng, maxLng := bounds(markers)
	counts := make([][]int, height)
	status := make([][]model.Status, height)
	for i := range counts {
		counts[i] = make([]int, width)
		status[i] = make([]model.Status, width)
	}

	for _, mk := range markers {
		col := scale(mk.Longitude, minLng, maxLng, width)
		row := height - 1 - scale(mk.Latitude, minLat, maxLat, height)
		counts[row][col]++
		status[row][col] = mk.Status
	}

	var b strings.Builder
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			switch n := counts[r][c]; {
			case n == 0:
				b.WriteString(theme.HelpStyle.UnsetItalic().Render("·"))
			case n == 1:
				b.WriteString(lipgloss.NewStyle().Foreground(theme.StatusColor(status[r][c])).Render("●"))
			case n < 10:
				b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprint(n)))
			default:
				b.WriteString(lipgloss.NewStyle().Bold(true).Render("+"))
			}
		}
		if r < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func bounds(markers []query.Marker) (minLat, maxLat, minLng, maxLng float64) {
	if len(markers) == 0 {
		return 0, 0, 0, 0
	}
	minLat, maxLat = markers[0].Latitude, markers[0].Latitude
	minLng, maxLng = markers[0].Longitude, markers[0].Longitude
	for _, mk := range markers[1:] {
		minLat = min(minLat, mk.Latitude)
		maxLat = max(maxLat, mk.Latitude)
		minLng = min(minLng, mk.Longitude)
		maxLng = max(maxLng, mk.Longitude)
	}
	return minLat, maxLat, minLng, maxLng
}

// scale maps v from [lo, hi] onto [0, n-1]. A degenerate range lands in
// the middle.
func scale(v, lo, hi float64, n int) int {
	if hi <= lo {
		return n / 2
	}
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return min(max(i, 0), n-1)
}

func plotWidth(width int) int   { return min(max(width-4, 10), 60) }
func plotHeight(height int) int { return min(max(height/3, 3), 10) }

func tableHeight(height int) int {
	return max(height-plotHeight(height)-5, 3)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetHeight(tableHeight(height))
	m.table.SetWidth(width)
}
