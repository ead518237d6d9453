package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/aretw0/jot"
)

func main() {
	count := pflag.Int("count", 1000, "Number of notes to generate")
	adapter := pflag.String("adapter", "fs", "Adapter to benchmark (fs, sqlite, memory)")
	keep := pflag.Bool("keep", false, "Keep the benchmark data after running")
	pflag.Parse()

	benchDir, err := os.MkdirTemp("", "jot_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	uri := benchDir
	if *adapter == "sqlite" {
		uri = filepath.Join(benchDir, "bench.db")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, slot, err := jot.Open(context.Background(), uri, jot.WithAdapter(*adapter), jot.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	if c, ok := slot.(interface{ Close() error }); ok {
		defer c.Close()
	}

	ctx := context.Background()

	// Every create rewrites the whole collection, so this grows quadratically.
	fmt.Printf("Creating %d notes on %s...\n", *count, *adapter)
	start := time.Now()
	var lastID string
	for i := 0; i < *count; i++ {
		n := store.Create(ctx, jot.NoteInput{
			Title: fmt.Sprintf("Note %d", i),
			Body:  fmt.Sprintf("Benchmark note %d written at %s", i, time.Now().Format(time.RFC3339)),
		})
		lastID = n.ID
	}
	fmt.Printf("Create: %v (%v/op)\n", time.Since(start), time.Since(start)/time.Duration(max(*count, 1)))

	start = time.Now()
	notes := store.ListAll(ctx)
	fmt.Printf("ListAll (%d notes): %v\n", len(notes), time.Since(start))

	start = time.Now()
	hits := store.Search(ctx, "note 9")
	fmt.Printf("Search (%d hits): %v\n", len(hits), time.Since(start))

	title := "renamed"
	start = time.Now()
	store.Update(ctx, lastID, jot.NotePatch{Title: &title})
	fmt.Printf("Update: %v\n", time.Since(start))

	start = time.Now()
	store.Delete(ctx, lastID)
	fmt.Printf("Delete: %v\n", time.Since(start))

	fmt.Printf("State: %+v\n", store.State())
}
