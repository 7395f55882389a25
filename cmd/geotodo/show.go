package main

import "github.com/spf13/cobra"

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of one todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	e, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := e.store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), t)
}
