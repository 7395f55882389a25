package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/geotodo/internal/query"
)

var mapJSON bool

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "List todos that have a location",
	Args:  cobra.NoArgs,
	RunE:  runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&mapJSON, "json", false, "print markers as JSON")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	e, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	todos, err := e.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing todos: %w", err)
	}

	markers := query.Markers(todos)
	if mapJSON {
		return writeJSON(cmd.OutOrStdout(), markers)
	}

	w := cmd.OutOrStdout()
	lat, lng := query.Center(markers)
	fmt.Fprintf(w, "center %.4f, %.4f\n", lat, lng)
	if len(markers) == 0 {
		fmt.Fprintln(w, "no located todos")
		return nil
	}
	for _, mk := range markers {
		fmt.Fprintf(w, "%3s %9.4f %9.4f %s", mk.ID, mk.Latitude, mk.Longitude, mk.Title)
		if mk.Address != "" {
			fmt.Fprintf(w, " (%s)", mk.Address)
		}
		fmt.Fprintln(w)
	}
	return nil
}
