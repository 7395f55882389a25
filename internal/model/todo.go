package model

import "time"

// Status is the workflow state of a todo.
type Status string

// Todo status constants.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Priority is the importance of a todo.
type Priority string

// Priority constants.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// DueDateLayout is the format of Todo.DueDate.
const DueDateLayout = "2006-01-02"

// Location pins a todo to a point on the map.
type Location struct {
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`
	Address   string  `json:"address,omitempty" toml:"address"`
}

// Todo is a task with scheduling, priority, and optional geolocation metadata.
type Todo struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Status      Status    `json:"status" db:"status"`
	Priority    Priority  `json:"priority" db:"priority"`
	DueDate     string    `json:"dueDate,omitempty" db:"due_date"`
	Category    string    `json:"category,omitempty" db:"category"`
	Location    *Location `json:"location,omitempty" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// HasLocation reports whether the todo is pinned to the map.
func (t Todo) HasLocation() bool { return t.Location != nil }

// IsOverdue reports whether the due date lies before the day containing now
// and the todo is not done.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == "" || t.Status == StatusDone {
		return false
	}
	due, err := time.ParseInLocation(DueDateLayout, t.DueDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

// Clone returns a deep copy so callers never share the Location pointer
// with the store.
func (t Todo) Clone() Todo {
	if t.Location != nil {
		loc := *t.Location
		t.Location = &loc
	}
	return t
}

// TodoFields is everything a caller supplies to create a todo. The store
// assigns the ID and timestamps.
type TodoFields struct {
	Title       string    `json:"title" toml:"title"`
	Description string    `json:"description,omitempty" toml:"description"`
	Completed   bool      `json:"completed" toml:"completed"`
	Status      Status    `json:"status" toml:"status"`
	Priority    Priority  `json:"priority" toml:"priority"`
	DueDate     string    `json:"dueDate,omitempty" toml:"due_date"`
	Category    string    `json:"category,omitempty" toml:"category"`
	Location    *Location `json:"location,omitempty" toml:"location"`
}

// TodoPatch holds the fields to change on an existing todo.
// Nil pointers mean "don't update this field".
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Status      *Status
	Priority    *Priority
	DueDate     *string
	Category    *string
	Location    *Location

	// ClearLocation removes the location. It wins over Location.
	ClearLocation bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Status == nil && p.Priority == nil && p.DueDate == nil &&
		p.Category == nil && p.Location == nil && !p.ClearLocation
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// StatusPtr returns a pointer to s.
func StatusPtr(s Status) *Status { return &s }

// PriorityPtr returns a pointer to p.
func PriorityPtr(p Priority) *Priority { return &p }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
