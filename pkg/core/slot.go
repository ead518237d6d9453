package core

import "context"

// DefaultKey is the slot key holding the serialized notes collection.
const DefaultKey = "notes_app_data"

// Slot defines the contract for the key-value storage backing the store.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQLite, SQL server, S3, memory).
//
// A Slot only moves opaque string blobs. It knows nothing about notes.
type Slot interface {
	// Get returns the value stored under key.
	// A missing key is reported as found == false with a nil error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value stored under key.
	// Implementations should make the overwrite atomic: a reader must observe
	// either the previous value or the new one, never a partial write.
	Set(ctx context.Context, key, value string) error
}

// Initializer is implemented by slots that need preparation before use
// (e.g., create directories, tables, or verify a bucket).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for slots that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever a key matching pattern changes.
	// An empty pattern or "*" matches every key.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
