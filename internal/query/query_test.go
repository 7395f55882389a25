package query

import (
	"math"
	"strconv"
	"testing"

	"github.com/nhle/geotodo/internal/model"
)

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: "1", Title: "Buy milk", Priority: model.PriorityLow, Status: model.StatusPending, Category: "Shopping"},
		{ID: "2", Title: "Fix bug", Priority: model.PriorityHigh, Status: model.StatusInProgress, Description: "Crash on start"},
	}
}

func numbered(n int) []model.Todo {
	todos := make([]model.Todo, n)
	for i := range todos {
		todos[i] = model.Todo{
			ID:       strconv.Itoa(i + 1),
			Title:    "task " + strconv.Itoa(i+1),
			Status:   model.StatusPending,
			Priority: model.PriorityMedium,
		}
	}
	return todos
}

func titles(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "empty matches all", search: "", want: []string{"Buy milk", "Fix bug"}},
		{name: "title", search: "bug", want: []string{"Fix bug"}},
		{name: "priority", search: "high", want: []string{"Fix bug"}},
		{name: "case insensitive", search: "MILK", want: []string{"Buy milk"}},
		{name: "description", search: "crash", want: []string{"Fix bug"}},
		{name: "category", search: "shop", want: []string{"Buy milk"}},
		{name: "status", search: "in-progress", want: []string{"Fix bug"}},
		{name: "no match", search: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(Filter(sampleTodos(), tt.search))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.search, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tt.search, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	todos := numbered(7)

	tests := []struct {
		page      int
		wantLen   int
		wantFirst string
	}{
		{page: 1, wantLen: 5, wantFirst: "1"},
		{page: 2, wantLen: 2, wantFirst: "6"},
		{page: 3, wantLen: 0},
		{page: 0, wantLen: 0},
		{page: -1, wantLen: 0},
		// Offsets that would overflow int.
		{page: 0x3333333333333335, wantLen: 0},
		{page: 1844674407370955163, wantLen: 0},
		{page: math.MaxInt, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.page), func(t *testing.T) {
			got := Paginate(todos, tt.page, DefaultPageSize)
			if len(got) != tt.wantLen {
				t.Fatalf("page %d: len = %d, want %d", tt.page, len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("page %d: first id = %s, want %s", tt.page, got[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct{ n, size, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{7, 5, 2},
		{10, 5, 2},
		{11, 5, 3},
	}
	for _, tt := range tests {
		if got := PageCount(tt.n, tt.size); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestRun_FirstPageUnfiltered(t *testing.T) {
	all := numbered(3)
	res := Run(all, "", 1)

	if len(res.Items) != 3 {
		t.Errorf("items = %d, want 3", len(res.Items))
	}
	if res.FilteredCount != res.TotalCount {
		t.Errorf("filtered %d != total %d", res.FilteredCount, res.TotalCount)
	}
	if res.PageCount != 1 || res.Page != 1 {
		t.Errorf("page %d of %d", res.Page, res.PageCount)
	}
}

func TestRun_SevenTodos(t *testing.T) {
	all := numbered(7)

	first := Run(all, "", 1)
	if len(first.Items) != 5 || first.PageCount != 2 {
		t.Errorf("page 1: %d items, %d pages", len(first.Items), first.PageCount)
	}

	second := Run(all, "", 2)
	if len(second.Items) != 2 || second.PageCount != 2 {
		t.Errorf("page 2: %d items, %d pages", len(second.Items), second.PageCount)
	}
}

func TestRun_SearchCounts(t *testing.T) {
	res := Run(sampleTodos(), "bug", 1)

	if res.FilteredCount != 1 || res.TotalCount != 2 {
		t.Errorf("counts = %d of %d, want 1 of 2", res.FilteredCount, res.TotalCount)
	}
	if len(res.Items) != 1 || res.Items[0].Title != "Fix bug" {
		t.Errorf("items = %v", titles(res.Items))
	}
	if res.Search != "bug" {
		t.Errorf("search = %q", res.Search)
	}
}

func TestRun_EmptyStore(t *testing.T) {
	res := Run(nil, "", 1)
	if len(res.Items) != 0 || res.PageCount != 0 || res.TotalCount != 0 {
		t.Errorf("unexpected result for empty store: %+v", res)
	}
}

func TestRunWithSize(t *testing.T) {
	res := RunWithSize(numbered(7), "", 2, 3)
	if len(res.Items) != 3 || res.Items[0].ID != "4" || res.PageCount != 3 {
		t.Errorf("unexpected result: %d items, first %s, %d pages", len(res.Items), res.Items[0].ID, res.PageCount)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct{ page, count, want int }{
		{1, 0, 1},
		{3, 2, 2},
		{0, 2, 1},
		{2, 2, 2},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.count); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.count, got, tt.want)
		}
	}
}
