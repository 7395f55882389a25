// Package query turns the full todo collection into what the views display:
// a search-filtered, paginated slice plus its counts, dashboard statistics,
// and map markers. Everything here is pure and synchronous.
package query

import (
	"strings"

	"github.com/nhle/geotodo/internal/model"
)

// DefaultPageSize is the number of todos per list page.
const DefaultPageSize = 5

// Result is one rendered page of the list view.
type Result struct {
	Items         []model.Todo `json:"items"`
	FilteredCount int          `json:"filteredCount"`
	TotalCount    int          `json:"totalCount"`
	PageCount     int          `json:"pageCount"`
	Page          int          `json:"page"`
	Search        string       `json:"search,omitempty"`
}

// Filter returns the todos whose title, description, category, priority,
// or status contains search, ignoring case. An empty search matches all.
// Order is preserved.
func Filter(todos []model.Todo, search string) []model.Todo {
	needle := strings.ToLower(search)
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if matches(t, needle) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t model.Todo, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{
		t.Title,
		t.Description,
		t.Category,
		string(t.Priority),
		string(t.Status),
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of todos. Pages before the first or
// past the last are empty.
func Paginate(todos []model.Todo, page, size int) []model.Todo {
	// Bounding page by the page count first keeps the offset from overflowing.
	if page < 1 || size < 1 || page > PageCount(len(todos), size) {
		return []model.Todo{}
	}
	start := (page - 1) * size
	end := min(start+size, len(todos))
	return todos[start:end]
}

// PageCount is the number of pages needed for n items; 0 when n is 0.
func PageCount(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}

// Run filters and paginates with DefaultPageSize.
func Run(all []model.Todo, search string, page int) Result {
	return RunWithSize(all, search, page, DefaultPageSize)
}

// RunWithSize filters all by search and returns the requested page.
func RunWithSize(all []model.Todo, search string, page, size int) Result {
	filtered := Filter(all, search)
	return Result{
		Items:         Paginate(filtered, page, size),
		FilteredCount: len(filtered),
		TotalCount:    len(all),
		PageCount:     PageCount(len(filtered), size),
		Page:          page,
		Search:        search,
	}
}

// ClampPage pulls page back into [1, pageCount]. With no pages it returns 1.
func ClampPage(page, pageCount int) int {
	if pageCount < 1 || page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}
