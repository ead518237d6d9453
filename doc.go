// Package jot is the Composition Root for the jot notes store.
//
// It connects the core business logic (pkg/core) with the storage adapters
// (pkg/adapters) using the Hexagonal Architecture pattern.
//
// A store keeps a single user's notes as one JSON collection under one key of
// a key-value slot. Every operation reads the whole collection, applies the
// change and writes it back. Storage failures never surface as errors: a
// broken read behaves like an empty collection and a failed write leaves the
// in-memory result intact. Both are reported through WithDiagnostics and the
// logger.
//
// Adapters:
//
//   - fs: one file per key, atomic replace, change feed via fsnotify (default).
//   - memory: process-local map.
//   - sqlite: embedded database file.
//   - s3: object storage, including S3-compatible servers.
//   - mysql, postgres: a table on a SQL server.
//
// Usage:
//
//	store, err := jot.New("./notes", jot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	n := store.Create(ctx, jot.NoteInput{Title: "Groceries", Body: "milk, eggs"})
//	hits := store.Search(ctx, "milk")
package jot
