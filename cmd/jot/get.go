package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		note, ok := store.GetByID(commandContext(cmd), args[0])
		if !ok {
			return fmt.Errorf("note %s not found", args[0])
		}
		if getJSON {
			return printJSON(cmd.OutOrStdout(), note)
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
}
