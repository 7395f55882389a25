package store

import (
	"time"

	"github.com/nhle/geotodo/internal/model"
)

// newTodo builds the stored record for a create. completed is derived from
// status; when status is missing, the caller's completed flag decides it.
func newTodo(id string, fields model.TodoFields, now time.Time) model.Todo {
	todo := model.Todo{
		ID:          id,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DueDate:     fields.DueDate,
		Category:    fields.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fields.Location != nil {
		loc := *fields.Location
		todo.Location = &loc
	}
	if todo.Status == "" {
		if fields.Completed {
			todo.Status = model.StatusDone
		} else {
			todo.Status = model.StatusPending
		}
	}
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	todo.Completed = todo.Status == model.StatusDone
	return todo
}

// applyPatch merges patch over t in place and refreshes UpdatedAt.
// UpdatedAt never moves backwards even if the clock does.
func applyPatch(t *model.Todo, patch model.TodoPatch, now time.Time) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.ClearLocation {
		t.Location = nil
	} else if patch.Location != nil {
		loc := *patch.Location
		t.Location = &loc
	}

	switch {
	case patch.Status != nil:
		t.Status = *patch.Status
	case patch.Completed != nil && *patch.Completed:
		t.Status = model.StatusDone
	case patch.Completed != nil && t.Status == model.StatusDone:
		t.Status = model.StatusPending
	}
	t.Completed = t.Status == model.StatusDone

	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	t.UpdatedAt = now
}
