// Package sqlite implements core.Slot on a single SQLite database file.
//
// Keys live in one table; Set is an upsert, so the overwrite is atomic at the
// statement level. The driver is pure Go (no cgo).
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/aretw0/jot/pkg/core"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
) WITHOUT ROWID;`

// Config holds the parameters for opening a slot database.
type Config struct {
	// Path is the database file. Use ":memory:" only with PoolSize 1,
	// since each in-memory connection is an independent database.
	Path string

	// PoolSize defaults to 4. Writes are serialized by SQLite regardless.
	PoolSize int

	Logger *slog.Logger
}

// Slot implements core.Slot over a SQLite connection pool.
type Slot struct {
	pool   *sqlitex.Pool
	path   string
	logger *slog.Logger
}

// Open creates the connection pool. Connections and the schema are
// initialized lazily on first use. The caller must call Close.
func Open(cfg Config) (*Slot, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", cfg.Path, err)
	}

	logger.Debug("sqlite slot opened", "path", cfg.Path, "pool_size", poolSize)
	return &Slot{pool: pool, path: cfg.Path, logger: logger}, nil
}

// prepareConnection applies pragmas and ensures the table exists.
// It runs once per pooled connection.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("sqlite: creating schema: %w", err)
	}
	return nil
}

// Initialize borrows one connection so configuration errors surface early.
func (s *Slot) Initialize(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: take: %w", err)
	}
	s.pool.Put(conn)
	return nil
}

// Get returns the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) (string, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", false, fmt.Errorf("sqlite: take: %w", err)
	}
	defer s.pool.Put(conn)

	var value string
	found := false
	err = sqlitex.Execute(conn, "SELECT value FROM slots WHERE name = ?;", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return value, found, nil
}

// Set upserts the value stored under key.
func (s *Slot) Set(ctx context.Context, key, value string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: take: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO slots (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value;",
		&sqlitex.ExecOptions{Args: []any{key, value}},
	)
	if err != nil {
		return fmt.Errorf("sqlite: set %q: %w", key, err)
	}
	return nil
}

// Close closes all connections in the pool.
func (s *Slot) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.Error("sqlite slot close error", "path", s.path, "error", err)
		return fmt.Errorf("sqlite: closing %s: %w", s.path, err)
	}
	s.logger.Debug("sqlite slot closed", "path", s.path)
	return nil
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	return map[string]string{"path": s.path}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "sqlite"
}

var _ core.Slot = (*Slot)(nil)
var _ core.Initializer = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
