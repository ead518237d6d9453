package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find notes whose title or body contains the query (case-insensitive)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		notes := byRecency(store.Search(commandContext(cmd), query))
		if searchJSON {
			return printJSON(cmd.OutOrStdout(), notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching notes.")
			return nil
		}
		printSummary(cmd.OutOrStdout(), notes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
