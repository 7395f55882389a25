package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != BackendMemory || cfg.Query.PageSize != DefaultPageSize ||
		cfg.Query.DebounceMs != DefaultDebounceMs {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "store:\n  backend: sqlite\n  seed_file: todos.toml\nquery:\n  page_size: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.SeedFile != "todos.toml" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Query.PageSize != DefaultPageSize {
		t.Errorf("page size %d not normalized", cfg.Query.PageSize)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("GEOTODO_QUERY_PAGE_SIZE", "9")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Query.PageSize != 9 {
		t.Errorf("page size = %d, want 9", cfg.Query.PageSize)
	}
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  backend: redis\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadConfig_Theme(t *testing.T) {
	tests := []struct {
		yaml    string
		want    string
		wantErr bool
	}{
		{yaml: "", want: ThemeDefault},
		{yaml: "display:\n  theme: Light\n", want: ThemeLight},
		{yaml: "display:\n  theme: dark\n", want: ThemeDark},
		{yaml: "display:\n  theme: solarized\n", wantErr: true},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.yaml)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.yaml, err)
		}
		if cfg.Display.Theme != tt.want {
			t.Errorf("%q: theme = %q, want %q", tt.yaml, cfg.Display.Theme, tt.want)
		}
	}
}
