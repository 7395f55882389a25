package dashboard

import (
	"strings"
	"testing"

	"github.com/nhle/geotodo/internal/model"
)

func TestBar(t *testing.T) {
	tests := []struct {
		count, total, width int
		want                string
	}{
		{0, 10, 10, ""},
		{5, 10, 10, "█████"},
		{10, 10, 10, "██████████"},
		{1, 100, 10, "█"},
		{3, 0, 10, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.count, tt.total, tt.width); got != tt.want {
			t.Errorf("Bar(%d, %d, %d) = %q, want %q", tt.count, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestView_ShowsCompletionRate(t *testing.T) {
	m := New(100, 30)
	m.SetTodos([]model.Todo{
		{Status: model.StatusDone, Priority: model.PriorityHigh},
		{Status: model.StatusDone, Priority: model.PriorityLow},
		{Status: model.StatusPending, Priority: model.PriorityMedium},
	})

	if m.Summary().Done != 2 {
		t.Fatalf("done = %d, want 2", m.Summary().Done)
	}
	if out := m.View(); !strings.Contains(out, "66.7") {
		t.Errorf("expected completion rate in view:\n%s", out)
	}
}
