package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	updateTitle string
	updateBody  string
	updateJSON  bool
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a note",
	Long:  `Update replaces only the fields whose flags are given. Passing --title "" sets an empty title.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch core.NotePatch
		if cmd.Flags().Changed("title") {
			patch.Title = &updateTitle
		}
		if cmd.Flags().Changed("body") {
			patch.Body = &updateBody
		}

		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		note, ok := store.Update(commandContext(cmd), args[0], patch)
		if !ok {
			return fmt.Errorf("note %s not found", args[0])
		}
		if updateJSON {
			return printJSON(cmd.OutOrStdout(), note)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&updateBody, "body", "b", "", "New body")
	updateCmd.Flags().BoolVar(&updateJSON, "json", false, "Output in JSON format")
}
