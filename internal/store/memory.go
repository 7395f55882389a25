package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/nhle/geotodo/internal/model"
)

// MemoryStore keeps todos in an ordered slice with a monotonically
// increasing id counter. Nothing survives the process.
type MemoryStore struct {
	mu     sync.RWMutex
	todos  []model.Todo
	nextID int
	opts   options
}

// NewMemoryStore returns an empty store whose first id is "1".
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		opts:   buildOptions(opts),
	}
}

// List returns a copy of every todo in creation order.
func (s *MemoryStore) List(_ context.Context) ([]model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Todo, len(s.todos))
	for i, t := range s.todos {
		out[i] = t.Clone()
	}
	return out, nil
}

// Get returns a copy of the todo with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	t := s.todos[i].Clone()
	return &t, nil
}

// Create appends a new todo with the next id.
func (s *MemoryStore) Create(_ context.Context, fields model.TodoFields) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	todo := newTodo(id, fields, s.opts.now())
	s.todos = append(s.todos, todo)
	s.opts.logger.Debug("todo created", "id", id, "title", todo.Title)

	out := todo.Clone()
	return &out, nil
}

// Update merges patch over the todo with the given id.
func (s *MemoryStore) Update(_ context.Context, id string, patch model.TodoPatch) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.opts.logger.Debug("update of missing todo", "id", id)
		return nil, notFound(id)
	}

	updated := s.todos[i].Clone()
	applyPatch(&updated, patch, s.opts.now())
	s.todos[i] = updated
	s.opts.logger.Debug("todo updated", "id", id)

	out := updated.Clone()
	return &out, nil
}

// Remove deletes the todo with the given id.
func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.opts.logger.Debug("remove of missing todo", "id", id)
		return notFound(id)
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	s.opts.logger.Debug("todo removed", "id", id)
	return nil
}

// Close is a no-op; the memory store holds no external resources.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) indexOf(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
