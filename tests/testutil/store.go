package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(store.WithClock(FixedClock()))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewMemoryStore creates a MemoryStore on the same clock as NewTestStore.
func NewMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	return store.NewMemoryStore(store.WithClock(FixedClock()))
}

// FixedClock returns a clock that advances one second per call, starting
// at 2026-01-01 UTC.
func FixedClock() func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// SeedTitles creates one todo per title and fails the test on error.
func SeedTitles(t *testing.T, s store.Store, titles ...string) []model.Todo {
	t.Helper()

	out := make([]model.Todo, 0, len(titles))
	for _, title := range titles {
		todo, err := s.Create(context.Background(), model.TodoFields{Title: title})
		if err != nil {
			t.Fatalf("creating %q: %v", title, err)
		}
		out = append(out, *todo)
	}
	return out
}
