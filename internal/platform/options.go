package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for opening a store.
type options struct {
	slot        core.Slot
	logger      *slog.Logger
	adapter     string
	config      map[string]interface{}
	storeOpts   []core.StoreOption
	diagnostics func(core.Diagnostic)
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the logger for the store and the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlot injects a custom storage slot (e.g. a mock).
// If provided, the adapter selected by name is skipped.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "memory",
// "sqlite", "s3", "mysql" or "postgres".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithKey overrides the slot key holding the collection.
func WithKey(key string) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, core.WithKey(key))
	}
}

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, core.WithClock(now))
	}
}

// WithIDGenerator overrides the store's ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, core.WithIDGenerator(gen))
	}
}

// WithDiagnostics registers a callback for swallowed read and write failures.
func WithDiagnostics(fn func(core.Diagnostic)) Option {
	return func(o *options) {
		o.diagnostics = fn
	}
}

// WithMustExist makes the fs adapter fail instead of creating its directory.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithWatcherErrorHandler receives runtime errors from the fs watch loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithS3Endpoint points the s3 adapter at a custom endpoint (MinIO, R2, a fake).
func WithS3Endpoint(url string) Option {
	return func(o *options) {
		o.config["s3_endpoint"] = url
	}
}

// WithS3Region sets the region for the s3 adapter.
func WithS3Region(region string) Option {
	return func(o *options) {
		o.config["s3_region"] = region
	}
}

// WithS3Credentials sets static credentials for the s3 adapter.
// Without them the default AWS credential chain is used.
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(o *options) {
		o.config["s3_access_key_id"] = accessKeyID
		o.config["s3_secret_access_key"] = secretAccessKey
	}
}

// WithS3PathStyle enables path-style addressing, required by most
// S3-compatible servers.
func WithS3PathStyle(enabled bool) Option {
	return func(o *options) {
		o.config["s3_path_style"] = enabled
	}
}

// WithS3Prefix stores objects under a key prefix inside the bucket.
func WithS3Prefix(prefix string) Option {
	return func(o *options) {
		o.config["s3_prefix"] = prefix
	}
}

// WithSQLitePoolSize sets the connection pool size of the sqlite adapter.
func WithSQLitePoolSize(size int) Option {
	return func(o *options) {
		o.config["sqlite_pool_size"] = size
	}
}
