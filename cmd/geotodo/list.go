package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/geotodo/internal/model"
	"github.com/nhle/geotodo/internal/query"
)

var (
	listSearch string
	listPage   int
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos one page at a time",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive search term")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number, starting at 1")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	todos, err := e.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing todos: %w", err)
	}

	res := query.RunWithSize(todos, listSearch, listPage, e.cfg.Query.PageSize)
	if listJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res query.Result) {
	if res.FilteredCount == 0 {
		if res.Search != "" {
			fmt.Fprintf(w, "no todos match %q\n", res.Search)
		} else {
			fmt.Fprintln(w, "no todos")
		}
		return
	}
	for _, t := range res.Items {
		fmt.Fprintln(w, todoLine(t))
	}
	fmt.Fprintf(w, "-- %d of %d todos, page %d of %d\n",
		res.FilteredCount, res.TotalCount, res.Page, res.PageCount)
}

func todoLine(t model.Todo) string {
	check := " "
	if t.Completed {
		check = "x"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%3s [%s] %-11s %-6s %s", t.ID, check, t.Status, t.Priority, t.Title)
	if t.Category != "" {
		fmt.Fprintf(&b, " #%s", t.Category)
	}
	if t.DueDate != "" {
		fmt.Fprintf(&b, " due %s", t.DueDate)
	}
	if t.HasLocation() {
		b.WriteString(" @")
	}
	return b.String()
}
