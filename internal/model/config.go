package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// StoreConfig selects and seeds the in-memory todo store.
type StoreConfig struct {
	// Backend is "memory" or "sqlite". Both keep data in process memory only.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// SeedFile is an optional TOML fixture loaded at startup.
	SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
}

// QueryConfig tunes the list view.
type QueryConfig struct {
	PageSize   int `mapstructure:"page_size" yaml:"page_size"`
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File receives log output while the terminal UI owns the screen.
	// Empty discards it.
	File string `mapstructure:"file" yaml:"file"`
}

// Display themes. ThemeDefault follows the terminal's reported background.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
	ThemeLight   = "light"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme picks the dark or light side of the adaptive palette.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Query   QueryConfig   `mapstructure:"query" yaml:"query"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// Default values shared by DefaultAppConfig and the viper defaults.
const (
	DefaultPageSize   = 5
	DefaultDebounceMs = 300
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/geotodo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "geotodo", "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		Query: QueryConfig{
			PageSize:   DefaultPageSize,
			DebounceMs: DefaultDebounceMs,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Display: DisplayConfig{
			Theme: ThemeDefault,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed with GEOTODO_ override file values
// (e.g. GEOTODO_STORE_BACKEND).
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("geotodo")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.seed_file", "")
	v.SetDefault("query.page_size", DefaultPageSize)
	v.SetDefault("query.debounce_ms", DefaultDebounceMs)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("display.theme", ThemeDefault)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *AppConfig) normalize() error {
	switch c.Store.Backend {
	case "":
		c.Store.Backend = BackendMemory
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Query.PageSize <= 0 {
		c.Query.PageSize = DefaultPageSize
	}
	if c.Query.DebounceMs < 0 {
		c.Query.DebounceMs = DefaultDebounceMs
	}
	switch c.Display.Theme = strings.ToLower(strings.TrimSpace(c.Display.Theme)); c.Display.Theme {
	case "":
		c.Display.Theme = ThemeDefault
	case ThemeDefault, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown display theme %q", c.Display.Theme)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store", cfg.Store)
	v.Set("query", cfg.Query)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
