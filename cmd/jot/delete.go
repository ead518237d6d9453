package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note. It asks for confirmation unless --yes is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := commandContext(cmd)
		note, ok := store.GetByID(ctx, id)
		if !ok {
			return fmt.Errorf("note %s not found", id)
		}

		if !deleteYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? [y/N] ", note.Title)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if !store.Delete(ctx, id) {
			return fmt.Errorf("note %s not found", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
