package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/geotodo/internal/logging"
	"github.com/nhle/geotodo/internal/model"
)

// ErrNotFound is returned when an update or remove references an id that
// is not in the store.
var ErrNotFound = errors.New("todo not found")

// Store is the exclusive owner of the todo collection. Every returned todo
// is a copy; mutating it does not affect the store.
type Store interface {
	// List returns every todo in creation order.
	List(ctx context.Context) ([]model.Todo, error)

	// Get returns a single todo or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Todo, error)

	// Create assigns the next id and timestamps and appends the todo.
	// Fields are not validated here; see the validation package.
	Create(ctx context.Context, fields model.TodoFields) (*model.Todo, error)

	// Update merges the supplied patch fields over the stored todo.
	Update(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error)

	// Remove deletes the todo permanently. Removing an absent id returns
	// ErrNotFound.
	Remove(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *log.Logger
}

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used for debug output of store operations.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open returns the backend named in cfg.
func Open(cfg model.StoreConfig, opts ...Option) (Store, error) {
	switch cfg.Backend {
	case "", model.BackendMemory:
		return NewMemoryStore(opts...), nil
	case model.BackendSQLite:
		s, err := NewSQLiteStore(opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
