package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aretw0/jot/pkg/core"
)

// byRecency orders notes most-recently-updated first. The store keeps
// storage order, so presentation sorting happens here.
func byRecency(notes []core.Note) []core.Note {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b core.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return sorted
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// printSummary writes one line per note: ID, last update and title.
func printSummary(w io.Writer, notes []core.Note) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %s\n", n.ID, n.UpdatedAt.Format("2006-01-02 15:04"), n.Title)
	}
}

func printNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "# %s\n", n.Title)
	fmt.Fprintf(w, "id:      %s\n", n.ID)
	fmt.Fprintf(w, "created: %s\n", n.CreatedAt.Format(core.TimeLayout))
	fmt.Fprintf(w, "updated: %s\n", n.UpdatedAt.Format(core.TimeLayout))
	if n.Body != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(n.Body, "\n"))
	}
}
