package store

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nhle/geotodo/internal/model"
)

// seedFile is the on-disk layout of a seed fixture:
//
//	[[todo]]
//	title = "Buy milk"
//	status = "pending"
//	[todo.location]
//	latitude = -23.55
//	longitude = -46.63
type seedFile struct {
	Todos []model.TodoFields `toml:"todo"`
}

// LoadSeed reads todo fixtures from a TOML file.
func LoadSeed(path string) ([]model.TodoFields, error) {
	var f seedFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("decoding seed file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("seed file %s: unknown key %q", path, undecoded[0].String())
	}
	return f.Todos, nil
}

// Seed creates every fixture in order, so ids follow file order.
func Seed(ctx context.Context, s Store, todos []model.TodoFields) error {
	for i, fields := range todos {
		if _, err := s.Create(ctx, fields); err != nil {
			return fmt.Errorf("seeding todo %d (%q): %w", i+1, fields.Title, err)
		}
	}
	return nil
}
