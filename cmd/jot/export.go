package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

var exportFormat string

// exportRecord mirrors the persisted layout with explicit YAML names.
type exportRecord struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Body      string `json:"body" yaml:"body"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the whole collection in storage order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, cleanup, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		notes := store.ListAll(commandContext(cmd))
		records := make([]exportRecord, 0, len(notes))
		for _, n := range notes {
			records = append(records, exportRecord{
				ID:        n.ID,
				Title:     n.Title,
				Body:      n.Body,
				CreatedAt: n.CreatedAt.Format(core.TimeLayout),
				UpdatedAt: n.UpdatedAt.Format(core.TimeLayout),
			})
		}

		switch exportFormat {
		case "json":
			return printJSON(cmd.OutOrStdout(), records)
		case "yaml", "yml":
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			defer encoder.Close()
			if err := encoder.Encode(records); err != nil {
				return fmt.Errorf("encoding YAML: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("unsupported export format %q (want json or yaml)", exportFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
}
