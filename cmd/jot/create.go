package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	createTitle string
	createBody  string
	createJSON  bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long:  `Create a note. A blank title becomes "` + core.DefaultTitle + `".`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		note := store.Create(commandContext(cmd), core.NoteInput{Title: createTitle, Body: createBody})
		if createJSON {
			return printJSON(cmd.OutOrStdout(), note)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title")
	createCmd.Flags().StringVarP(&createBody, "body", "b", "", "Note body")
	createCmd.Flags().BoolVar(&createJSON, "json", false, "Output in JSON format")
}
