package query

import (
	"sort"
	"strings"

	"github.com/nhle/geotodo/internal/model"
)

// CategoryCount is how many todos share one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Done     int    `json:"done"`
}

// Categories groups todos by category, ignoring case, sorted by name.
// Uncategorized todos are not counted. The first spelling seen is the one
// reported.
func Categories(todos []model.Todo) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, t := range todos {
		name := strings.TrimSpace(t.Category)
		if name == "" {
			continue
		}
		k := strings.ToLower(name)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, CategoryCount{Category: name})
		}
		out[i].Count++
		if t.Status == model.StatusDone {
			out[i].Done++
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return strings.ToLower(out[a].Category) < strings.ToLower(out[b].Category)
	})
	return out
}

// InCategory returns the todos whose category equals name, ignoring case.
func InCategory(todos []model.Todo, name string) []model.Todo {
	var out []model.Todo
	for _, t := range todos {
		if strings.EqualFold(strings.TrimSpace(t.Category), name) {
			out = append(out, t)
		}
	}
	return out
}
