package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to the slot as they happen (fs adapter)",
	Long: `Watch follows the storage directory and prints one line per change,
including changes made by other jot processes. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		_, slot, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		source, err := jotlifecycle.WatchSource(ctx, slot, watchPattern)
		if err != nil {
			return err
		}
		if err := source.Start(ctx); err != nil {
			return err
		}

		cmd.PrintErrln("Watching for changes...")
		for event := range source.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), event)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "", `Glob over slot keys, e.g. "notes_*"`)
}
