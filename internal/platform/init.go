package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/s3"
	"github.com/aretw0/jot/pkg/adapters/sqldb"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

// Adapters lists the adapter names accepted by WithAdapter.
var Adapters = []string{"fs", "memory", "sqlite", "s3", "mysql", "postgres"}

// Init builds the slot selected by the options and runs its initialization.
// The 'uri' argument is adapter-specific: a directory for fs, a database file
// for sqlite, a bucket for s3, a DSN for mysql and postgres. memory ignores it.
func Init(ctx context.Context, uri string, opts ...Option) (core.Slot, error) {
	return initSlot(ctx, uri, buildOptions(opts))
}

func initSlot(ctx context.Context, uri string, o *options) (core.Slot, error) {
	// 1. Check for injected slot
	slot := o.slot
	if slot == nil {
		var err error
		slot, err = newSlot(ctx, uri, o)
		if err != nil {
			return nil, err
		}
	}

	// 2. Run initialization when the backend has any
	if initializer, ok := slot.(core.Initializer); ok {
		if err := initializer.Initialize(ctx); err != nil {
			closeSlot(slot)
			return nil, err
		}
	}

	o.logger.Debug("slot ready", "adapter", o.adapter, "uri", redact(uri))
	return slot, nil
}

func newSlot(ctx context.Context, uri string, o *options) (core.Slot, error) {
	switch o.adapter {
	case "fs", "":
		return initFS(uri, o)
	case "memory":
		return memory.NewSlot(nil), nil
	case "sqlite":
		return initSQLite(uri, o)
	case "s3":
		return initS3(ctx, uri, o)
	case "mysql", "postgres":
		return sqldb.Open(sqldb.Config{Dialect: o.adapter, DSN: uri, Logger: o.logger})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the configuration of the filesystem adapter.
func initFS(path string, o *options) (core.Slot, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data path: %w", err)
	}

	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewSlot(fs.Config{
		Path:         abs,
		MustExist:    mustExist,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), nil
}

func initSQLite(path string, o *options) (core.Slot, error) {
	if path == "" {
		path = "jot.db"
	}
	poolSize, _ := o.config["sqlite_pool_size"].(int)
	return sqlite.Open(sqlite.Config{Path: path, PoolSize: poolSize, Logger: o.logger})
}

func initS3(ctx context.Context, bucket string, o *options) (core.Slot, error) {
	endpoint, _ := o.config["s3_endpoint"].(string)
	region, _ := o.config["s3_region"].(string)
	accessKey, _ := o.config["s3_access_key_id"].(string)
	secretKey, _ := o.config["s3_secret_access_key"].(string)
	pathStyle, _ := o.config["s3_path_style"].(bool)
	prefix, _ := o.config["s3_prefix"].(string)

	return s3.New(ctx, s3.Config{
		Bucket:          bucket,
		Prefix:          prefix,
		Endpoint:        endpoint,
		Region:          region,
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		UsePathStyle:    pathStyle,
		Logger:          o.logger,
	})
}

// closeSlot releases backends that hold connections.
func closeSlot(slot core.Slot) {
	if c, ok := slot.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// redact hides the password of a DSN before logging it. Both URL-style
// (postgres://u:p@host) and MySQL-style (u:p@tcp(host)) DSNs are handled.
func redact(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	start := 0
	if i := strings.Index(uri, "://"); i >= 0 && i < at {
		start = i + len("://")
	}
	user, _, ok := strings.Cut(uri[start:at], ":")
	if !ok {
		return uri
	}
	return uri[:start] + user + ":***" + uri[at:]
}
