package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/geotodo/internal/model"
)

// SQLiteStore implements Store on a private in-memory SQLite database.
// Every instance gets its own database, which disappears on Close or
// process exit.
type SQLiteStore struct {
	db   *sqlx.DB
	opts options
}

// todoRow is the flat database representation of a todo.
type todoRow struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Completed   bool            `db:"completed"`
	Status      string          `db:"status"`
	Priority    string          `db:"priority"`
	DueDate     string          `db:"due_date"`
	Category    string          `db:"category"`
	CreatedAt   int64           `db:"created_at"`
	UpdatedAt   int64           `db:"updated_at"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	Address     sql.NullString  `db:"address"`
}

const selectTodos = `SELECT id, title, description, completed, status, priority,
	due_date, category, created_at, updated_at, latitude, longitude, address
	FROM todos`

// NewSQLiteStore opens a fresh in-memory database and runs the schema
// migrations.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:geotodo-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps the in-memory database alive and
	// serializes every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLiteStore{db: db, opts: buildOptions(opts)}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection, discarding all data.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// List returns every todo ordered by id, which is creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Todo, error) {
	var rows []todoRow
	if err := s.db.SelectContext(ctx, &rows, selectTodos+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}

	todos := make([]model.Todo, len(rows))
	for i, r := range rows {
		todos[i] = r.toModel()
	}
	return todos, nil
}

// Get retrieves a single todo by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Todo, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return nil, notFound(id)
	}

	var row todoRow
	err := s.db.GetContext(ctx, &row, selectTodos+" WHERE id = ?", rowID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}

	todo := row.toModel()
	return &todo, nil
}

// Create inserts a new todo. AUTOINCREMENT guarantees ids are never reused.
func (s *SQLiteStore) Create(ctx context.Context, fields model.TodoFields) (*model.Todo, error) {
	todo := newTodo("", fields, s.opts.now())
	row := fromModel(todo)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			title, description, completed, status, priority,
			due_date, category, created_at, updated_at,
			latitude, longitude, address
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Title, row.Description, row.Completed, row.Status, row.Priority,
		row.DueDate, row.Category, row.CreatedAt, row.UpdatedAt,
		row.Latitude, row.Longitude, row.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new todo id: %w", err)
	}

	todo.ID = strconv.FormatInt(rowID, 10)
	s.opts.logger.Debug("todo created", "id", todo.ID, "title", todo.Title, "backend", "sqlite")
	return &todo, nil
}

// Update merges patch over the stored todo inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return nil, notFound(id)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var row todoRow
	err = tx.GetContext(ctx, &row, selectTodos+" WHERE id = ?", rowID)
	if errors.Is(err, sql.ErrNoRows) {
		s.opts.logger.Debug("update of missing todo", "id", id, "backend", "sqlite")
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}

	todo := row.toModel()
	applyPatch(&todo, patch, s.opts.now())
	row = fromModel(todo)

	_, err = tx.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, description = ?, completed = ?, status = ?, priority = ?,
			due_date = ?, category = ?, updated_at = ?,
			latitude = ?, longitude = ?, address = ?
		WHERE id = ?`,
		row.Title, row.Description, row.Completed, row.Status, row.Priority,
		row.DueDate, row.Category, row.UpdatedAt,
		row.Latitude, row.Longitude, row.Address,
		rowID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing todo %s: %w", id, err)
	}

	s.opts.logger.Debug("todo updated", "id", id, "backend", "sqlite")
	return &todo, nil
}

// Remove deletes a todo by id.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	rowID, ok := parseRowID(id)
	if !ok {
		return notFound(id)
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", rowID)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		s.opts.logger.Debug("remove of missing todo", "id", id, "backend", "sqlite")
		return notFound(id)
	}

	s.opts.logger.Debug("todo removed", "id", id, "backend", "sqlite")
	return nil
}

func parseRowID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (r todoRow) toModel() model.Todo {
	todo := model.Todo{
		ID:          strconv.FormatInt(r.ID, 10),
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Status:      model.Status(r.Status),
		Priority:    model.Priority(r.Priority),
		DueDate:     r.DueDate,
		Category:    r.Category,
		CreatedAt:   time.Unix(0, r.CreatedAt),
		UpdatedAt:   time.Unix(0, r.UpdatedAt),
	}
	if r.Latitude.Valid && r.Longitude.Valid {
		todo.Location = &model.Location{
			Latitude:  r.Latitude.Float64,
			Longitude: r.Longitude.Float64,
			Address:   r.Address.String,
		}
	}
	return todo
}

func fromModel(t model.Todo) todoRow {
	row := todoRow{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt.UnixNano(),
		UpdatedAt:   t.UpdatedAt.UnixNano(),
	}
	if t.Location != nil {
		row.Latitude = sql.NullFloat64{Float64: t.Location.Latitude, Valid: true}
		row.Longitude = sql.NullFloat64{Float64: t.Location.Longitude, Valid: true}
		row.Address = sql.NullString{String: t.Location.Address, Valid: t.Location.Address != ""}
	}
	return row
}
