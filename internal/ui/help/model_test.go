package help

import (
	"strings"
	"testing"

	"github.com/nhle/geotodo/internal/keys"
)

func TestSections_ContextFirst(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)

	tests := []struct {
		ctx   Context
		title string
		desc  string
	}{
		{ContextList, "List", "toggle done"},
		{ContextMap, "Map", "open marker's todo"},
		{ContextDashboard, "Dashboard", "new todo"},
		{ContextCategories, "Categories", "clear category"},
		{ContextDetail, "Todo detail", "scroll up"},
	}
	for _, tt := range tests {
		m.SetContext(tt.ctx)
		sections := m.Sections()
		if len(sections) != 2 {
			t.Fatalf("%s: %d sections, want 2", tt.title, len(sections))
		}
		if sections[0].Title != tt.title {
			t.Errorf("first section = %q, want %q", sections[0].Title, tt.title)
		}
		found := false
		for _, b := range sections[0].Bindings {
			if b.Help().Desc == tt.desc {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: no binding described %q", tt.title, tt.desc)
		}
		if sections[1].Title != "Everywhere" {
			t.Errorf("second section = %q", sections[1].Title)
		}
	}
}

func TestRelabelKeepsKeys(t *testing.T) {
	k := keys.DefaultKeyMap()
	b := relabel(k.Delete, "clear category")
	if got := strings.Join(b.Keys(), ","); got != "d" {
		t.Errorf("keys = %q, want d", got)
	}
	if b.Help().Key != "d" || b.Help().Desc != "clear category" {
		t.Errorf("help = %+v", b.Help())
	}
}

func TestView_ListsCommands(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)
	out := m.View()
	for _, want := range []string{"Commands (:)", "page N", "tab NAME|N", "delete ID"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
