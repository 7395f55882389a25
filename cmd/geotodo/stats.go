package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/geotodo/internal/query"
	"github.com/nhle/geotodo/internal/theme"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts by status and priority",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	todos, err := e.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing todos: %w", err)
	}

	s := query.Summarize(todos)
	if statsJSON {
		return writeJSON(cmd.OutOrStdout(), s)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "total       %d\n", s.Total)
	for _, sc := range s.ByStatus() {
		fmt.Fprintf(w, "%-11s %d\n", theme.StatusLabel(sc.Status), sc.Count)
	}
	for _, pc := range s.ByPriority() {
		fmt.Fprintf(w, "%-11s %d\n", theme.PriorityLabel(pc.Priority), pc.Count)
	}
	fmt.Fprintf(w, "located     %d\n", s.Located)
	fmt.Fprintf(w, "completion  %s%%\n", s.CompletionRateString())
	return nil
}
