package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		notes := byRecency(store.ListAll(commandContext(cmd)))
		if listJSON {
			return printJSON(cmd.OutOrStdout(), notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notes yet.")
			return nil
		}
		printSummary(cmd.OutOrStdout(), notes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
