// Package main implements the geotodo CLI and terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nhle/geotodo/internal/app"
	"github.com/nhle/geotodo/internal/logging"
	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/store"
	"github.com/nhle/geotodo/internal/theme"
	"github.com/nhle/geotodo/internal/validation"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

var (
	configPath string
	seedPath   string
	backend    string
)

var rootCmd = &cobra.Command{
	Use:           "geotodo",
	Short:         "Geotodo - todos with due dates, priorities and places",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "TOML file of todos to load at startup")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend (memory or sqlite)")
}

// env is everything a command needs after startup.
type env struct {
	cfg    *model.AppConfig
	logger *log.Logger
	store  store.Store
	closer io.Closer
}

func (e *env) Close() error {
	return errors.Join(e.store.Close(), e.closer.Close())
}

// bootstrap loads config, builds the logger, opens the store and seeds it.
// logToFile keeps log output away from the terminal while the UI runs.
func bootstrap(ctx context.Context, logToFile bool) (*env, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if seedPath != "" {
		cfg.Store.SeedFile = seedPath
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}

	logger, closer, err := logging.FromConfig(cfg.Log, logToFile)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.Store, store.WithLogger(logger))
	if err != nil {
		closer.Close()
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, store: s, closer: closer}

	if cfg.Store.SeedFile != "" {
		if err := seed(ctx, e); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

func seed(ctx context.Context, e *env) error {
	todos, err := store.LoadSeed(e.cfg.Store.SeedFile)
	if err != nil {
		return err
	}
	for i, fields := range todos {
		if err := validation.ValidateFields(fields); err != nil {
			return fmt.Errorf("seed todo %d (%q): %w", i+1, fields.Title, err)
		}
	}
	if err := store.Seed(ctx, e.store, todos); err != nil {
		return err
	}
	e.logger.Debug("seeded store", "file", e.cfg.Store.SeedFile, "count", len(todos))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := bootstrap(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	theme.Apply(e.cfg.Display.Theme)
	m := app.New(e.store, app.OptionsFromConfig(e.cfg, configPath, e.logger))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
