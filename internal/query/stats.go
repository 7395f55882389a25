package query

import (
	"strconv"

	"github.com/nhle/geotodo/internal/model"
)

// Summary is the dashboard's view of a todo set.
type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`

	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`

	Located int `json:"located"`

	// CompletionRate is Done/Total as a percentage, 0 for an empty set.
	CompletionRate float64 `json:"completionRate"`
}

// Summarize counts todos by status, priority, and location.
func Summarize(todos []model.Todo) Summary {
	var s Summary
	s.Total = len(todos)
	for _, t := range todos {
		switch t.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusDone:
			s.Done++
		}
		switch t.Priority {
		case model.PriorityLow:
			s.Low++
		case model.PriorityMedium:
			s.Medium++
		case model.PriorityHigh:
			s.High++
		}
		if t.HasLocation() {
			s.Located++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Done) / float64(s.Total) * 100
	}
	return s
}

// CompletionRateString formats the rate with one decimal, e.g. "66.7".
func (s Summary) CompletionRateString() string {
	return strconv.FormatFloat(s.CompletionRate, 'f', 1, 64)
}

// StatusCount pairs a status with its count, in display order.
type StatusCount struct {
	Status model.Status
	Count  int
}

// ByStatus returns the status counts in display order.
func (s Summary) ByStatus() []StatusCount {
	return []StatusCount{
		{Status: model.StatusPending, Count: s.Pending},
		{Status: model.StatusInProgress, Count: s.InProgress},
		{Status: model.StatusDone, Count: s.Done},
	}
}

// PriorityCount pairs a priority with its count.
type PriorityCount struct {
	Priority model.Priority
	Count    int
}

// ByPriority returns the priority counts from low to high.
func (s Summary) ByPriority() []PriorityCount {
	return []PriorityCount{
		{Priority: model.PriorityLow, Count: s.Low},
		{Priority: model.PriorityMedium, Count: s.Medium},
		{Priority: model.PriorityHigh, Count: s.High},
	}
}
