package mapview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestPlot_Corners(t *testing.T) {
	markers := []query.Marker{
		{Latitude: 10, Longitude: 0},
		{Latitude: 0, Longitude: 10},
	}

	lines := strings.Split(Plot(markers, 5, 3), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	// North-west marker on the top row, south-east on the bottom row.
	if lines[0] != "●····" {
		t.Errorf("top row = %q", lines[0])
	}
	if lines[2] != "····●" {
		t.Errorf("bottom row = %q", lines[2])
	}
}

func TestPlot_StackedMarkersShowCount(t *testing.T) {
	markers := []query.Marker{
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 1},
	}

	out := Plot(markers, 3, 3)
	if !strings.Contains(out, "2") {
		t.Errorf("expected count 2 in plot:\n%s", out)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		n, want   int
	}{
		{0, 0, 10, 11, 0},
		{10, 0, 10, 11, 10},
		{5, 0, 10, 11, 5},
		{5, 5, 5, 11, 5},
	}
	for _, tt := range tests {
		if got := scale(tt.v, tt.lo, tt.hi, tt.n); got != tt.want {
			t.Errorf("scale(%v, %v, %v, %d) = %d, want %d", tt.v, tt.lo, tt.hi, tt.n, got, tt.want)
		}
	}
}

func TestSelectMarker(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.SetTodos([]model.Todo{
		{ID: "1", Title: "no location"},
		{ID: "2", Title: "pinned", Location: &model.Location{Latitude: 1, Longitude: 2}},
	})

	if len(m.Markers()) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(m.Markers()))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SelectedMarkerMsg)
	if !ok || msg.TodoID != "2" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestView_Empty(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	out := m.View()
	if !strings.Contains(out, "-23.5505, -46.6333") {
		t.Errorf("expected default center in view:\n%s", out)
	}
}
