package query

import (
	"reflect"
	"testing"

	"github.com/nhle/geotodo/internal/model"
)

func TestCategories(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Category: "work", Status: model.StatusDone},
		{ID: "2", Category: "Home"},
		{ID: "3", Category: ""},
		{ID: "4", Category: "Work"},
		{ID: "5", Category: " home "},
	}

	got := Categories(todos)
	want := []CategoryCount{
		{Category: "Home", Count: 2},
		{Category: "work", Count: 2, Done: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %+v, want %+v", got, want)
	}

	if got := Categories(nil); len(got) != 0 {
		t.Errorf("Categories(nil) = %+v, want empty", got)
	}
}

func TestInCategory(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Category: "work"},
		{ID: "2", Category: "home"},
		{ID: "3", Category: "WORK"},
	}

	got := InCategory(todos, "Work")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("InCategory() = %+v", got)
	}
}
