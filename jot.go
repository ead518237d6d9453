package jot

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note record.
type Note = core.Note

// NoteInput is a public alias for the create payload.
type NoteInput = core.NoteInput

// NotePatch is a public alias for the update payload.
type NotePatch = core.NotePatch

// Store is a public alias for the notes store.
type Store = core.Store

// Slot is a public alias for the storage port.
type Slot = core.Slot

// Diagnostic is a public alias for a swallowed storage failure report.
type Diagnostic = core.Diagnostic

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "memory", "sqlite",
// "s3", "mysql", "postgres"). Defaults to "fs".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSlot injects a custom storage slot.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKey overrides the slot key holding the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator overrides the note ID generator.
func WithIDGenerator(gen func() string) Option {
	return platform.WithIDGenerator(gen)
}

// WithDiagnostics registers a callback for swallowed storage failures.
func WithDiagnostics(fn func(core.Diagnostic)) Option {
	return platform.WithDiagnostics(fn)
}

// WithMustExist ensures the fs data directory already exists.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatcherErrorHandler receives runtime errors from the fs watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithS3Endpoint points the s3 adapter at a custom endpoint.
func WithS3Endpoint(url string) Option {
	return platform.WithS3Endpoint(url)
}

// WithS3Region sets the s3 region.
func WithS3Region(region string) Option {
	return platform.WithS3Region(region)
}

// WithS3Credentials sets static s3 credentials.
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return platform.WithS3Credentials(accessKeyID, secretAccessKey)
}

// WithS3PathStyle enables path-style s3 addressing.
func WithS3PathStyle(enabled bool) Option {
	return platform.WithS3PathStyle(enabled)
}

// WithS3Prefix stores objects under a prefix inside the bucket.
func WithS3Prefix(prefix string) Option {
	return platform.WithS3Prefix(prefix)
}

// WithSQLitePoolSize sets the sqlite connection pool size.
func WithSQLitePoolSize(size int) Option {
	return platform.WithSQLitePoolSize(size)
}

// --- Factory ---

// New creates a notes store on the configured adapter. Adapters that hold
// connections (sqlite, mysql, postgres) must be opened with Open instead, so
// their slot can be closed.
func New(uri string, opts ...Option) (*core.Store, error) {
	return platform.New(uri, opts...)
}

// Open creates a notes store and also returns its slot.
func Open(ctx context.Context, uri string, opts ...Option) (*core.Store, core.Slot, error) {
	return platform.Open(ctx, uri, opts...)
}

// Init builds and initializes a slot without wrapping it in a store.
func Init(ctx context.Context, uri string, opts ...Option) (core.Slot, error) {
	return platform.Init(ctx, uri, opts...)
}

// TimeLayout is the timestamp format used in the persisted collection.
const TimeLayout = core.TimeLayout

// DefaultKey is the slot key used when WithKey is not given.
const DefaultKey = core.DefaultKey
