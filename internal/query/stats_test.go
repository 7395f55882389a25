package query

import (
	"testing"

	"github.com/nhle/geotodo/internal/model"
)

func TestSummarize(t *testing.T) {
	todos := []model.Todo{
		{Status: model.StatusDone, Priority: model.PriorityHigh, Location: &model.Location{}},
		{Status: model.StatusDone, Priority: model.PriorityLow},
		{Status: model.StatusPending, Priority: model.PriorityMedium, Location: &model.Location{}},
	}

	s := Summarize(todos)

	if s.Total != 3 || s.Done != 2 || s.Pending != 1 || s.InProgress != 0 {
		t.Errorf("status counts = %+v", s)
	}
	if s.Low != 1 || s.Medium != 1 || s.High != 1 {
		t.Errorf("priority counts = %+v", s)
	}
	if s.Located != 2 {
		t.Errorf("located = %d, want 2", s.Located)
	}
	if got := s.CompletionRateString(); got != "66.7" {
		t.Errorf("completion rate = %q, want 66.7", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.CompletionRate != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if got := s.CompletionRateString(); got != "0.0" {
		t.Errorf("completion rate = %q, want 0.0", got)
	}
}

func TestSummary_ByStatusOrder(t *testing.T) {
	s := Summary{Pending: 1, InProgress: 2, Done: 3}
	got := s.ByStatus()
	want := []StatusCount{
		{model.StatusPending, 1},
		{model.StatusInProgress, 2},
		{model.StatusDone, 3},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ByStatus()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummary_ByPriorityOrder(t *testing.T) {
	s := Summary{Low: 4, Medium: 5, High: 6}
	got := s.ByPriority()
	if got[0].Priority != model.PriorityLow || got[2].Count != 6 {
		t.Errorf("ByPriority() = %+v", got)
	}
}
