package jot_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/adapters/memory"
)

// Example_basic creates a store in a temporary directory, adds a note and
// finds it again.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "jot-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := jot.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store.Create(ctx, jot.NoteInput{Title: "Groceries", Body: "milk, eggs"})

	for _, n := range store.Search(ctx, "MILK") {
		fmt.Println(n.Title)
	}
	// Output:
	// Groceries
}

// ExampleWithDiagnostics shows how a corrupt collection is reported while the
// store keeps working as if it were empty.
func ExampleWithDiagnostics() {
	slotData := map[string]string{"notes_app_data": "{not json"}

	store, err := jot.New("", jot.WithSlot(memory.NewSlot(slotData)), jot.WithDiagnostics(func(d jot.Diagnostic) {
		fmt.Println("diagnostic:", d.Op)
	}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(store.ListAll(context.Background())))
	// Output:
	// diagnostic: list
	// 0
}
