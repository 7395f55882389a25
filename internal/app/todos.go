package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/ui/detail"
)

// todosLoadedMsg carries the full collection after any change.
type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

// todoCreatedResultMsg is sent after a todo is stored.
type todoCreatedResultMsg struct {
	todo *model.Todo
	err  error
}

// todoUpdatedResultMsg is sent after a todo is updated.
type todoUpdatedResultMsg struct {
	todo *model.Todo
	err  error
}

// todoDeletedResultMsg is sent after a todo is removed.
type todoDeletedResultMsg struct {
	id  string
	err error
}

// todoEditReadyMsg carries the todo to be edited.
type todoEditReadyMsg struct {
	todo *model.Todo
	err  error
}

// loadTodos fetches every todo from the store.
func (m *Model) loadTodos() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		todos, err := s.List(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

// createTodo stores a new todo.
func (m *Model) createTodo(fields model.TodoFields) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		todo, err := s.Create(context.Background(), fields)
		return todoCreatedResultMsg{todo: todo, err: err}
	}
}

// updateTodo merges patch over the todo with the given id.
func (m *Model) updateTodo(id string, patch model.TodoPatch) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		todo, err := s.Update(context.Background(), id, patch)
		return todoUpdatedResultMsg{todo: todo, err: err}
	}
}

// deleteTodo removes a todo from the store.
func (m *Model) deleteTodo(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.Remove(context.Background(), id)
		return todoDeletedResultMsg{id: id, err: err}
	}
}

// toggleTodoComplete flips completed; the store derives the status.
func (m *Model) toggleTodoComplete(todo model.Todo) tea.Cmd {
	return m.updateTodo(todo.ID, model.TodoPatch{
		Completed: model.BoolPtr(!todo.Completed),
	})
}

// startEditTodo loads a fresh copy of the todo before opening the form.
func (m *Model) startEditTodo(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		todo, err := s.Get(context.Background(), id)
		return todoEditReadyMsg{todo: todo, err: err}
	}
}

// loadTodoDetail loads a todo for the detail view.
func (m *Model) loadTodoDetail(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		todo, err := s.Get(context.Background(), id)
		return detail.DetailLoadedMsg{Todo: todo, Err: err}
	}
}
