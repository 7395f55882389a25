package config

import (
	"path/filepath"
	"testing"

	"github.com/nhle/geotodo/internal/keys"
	"github.com/nhle/geotodo/internal/model"
)

func TestIntInRange(t *testing.T) {
	v := intInRange("page size", 1, MaxPageSize)
	for _, s := range []string{"1", " 5 ", "50"} {
		if err := v(s); err != nil {
			t.Errorf("%q rejected: %v", s, err)
		}
	}
	for _, s := range []string{"0", "51", "", "five", "2.5"} {
		if err := v(s); err == nil {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestStartPrefillsAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := New(*model.DefaultAppConfig(), path, keys.DefaultKeyMap(), 80, 24)
	m.Start()

	if m.fb.pageSize != "5" || m.fb.debounceMs != "300" || m.fb.logLevel != "info" ||
		m.fb.theme != model.ThemeDefault {
		t.Fatalf("prefill = %+v", *m.fb)
	}

	m.fb.pageSize = "10"
	m.fb.debounceMs = "0"
	m.fb.logLevel = "debug"
	m.fb.theme = model.ThemeLight
	cfg, err := m.fb.apply(m.Config())
	if err != nil {
		t.Fatal(err)
	}

	msg := m.write(cfg)().(configWrittenMsg)
	if msg.err != nil {
		t.Fatalf("write: %v", msg.err)
	}

	m, cmd := m.Update(msg)
	if m.mode != ModeResult {
		t.Errorf("mode = %d, want result", m.mode)
	}
	saved, ok := cmd().(SettingsSavedMsg)
	if !ok || saved.Config.Query.PageSize != 10 {
		t.Fatalf("saved = %#v", saved)
	}

	loaded, err := model.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Query.PageSize != 10 || loaded.Query.DebounceMs != 0 || loaded.Log.Level != "debug" ||
		loaded.Display.Theme != model.ThemeLight {
		t.Errorf("reloaded = %+v", loaded)
	}
}

func TestWriteWithoutPath(t *testing.T) {
	m := New(*model.DefaultAppConfig(), "", keys.DefaultKeyMap(), 80, 24)
	msg := m.write(m.Config())().(configWrittenMsg)
	if msg.err != nil {
		t.Errorf("unexpected error: %v", msg.err)
	}
}
