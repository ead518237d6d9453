// Package fs implements core.Slot on the local filesystem.
//
// Each key is stored as a single JSON file (<dir>/<key>.json) replaced
// atomically on every Set, so readers never observe a half-written
// collection.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// FileExt is the extension appended to every key on disk.
const FileExt = ".json"

// Slot implements core.Slot using one file per key.
type Slot struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem slot.
type Config struct {
	Path      string
	MustExist bool         // Fail Initialize instead of creating Path.
	Logger    *slog.Logger // Optional.
	// ErrorHandler receives watcher errors. Defaults to logging them.
	ErrorHandler func(error)
}

// NewSlot creates a new filesystem-backed slot.
// No I/O happens until Initialize, Get or Set is called.
func NewSlot(config Config) *Slot {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Slot{
		Path:   config.Path,
		config: config,
	}
}

// Initialize performs the necessary setup for the slot directory.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Get reads the file backing key. A missing file is reported as not found.
func (s *Slot) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	path, err := s.filename(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file backing key.
func (s *Slot) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := replaceFile(path, value); err != nil {
		return err
	}

	s.recordWrite()
	s.config.Logger.Debug("slot written", "key", key, "path", path, "bytes", len(value))
	return nil
}

// filename maps a key to its file, rejecting keys that would escape Path.
func (s *Slot) filename(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("slot key is empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyOf is the inverse of filename. ok is false for files that are not slots.
func keyOf(path string) (key string, ok bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != FileExt {
		return "", false
	}
	key = strings.TrimSuffix(base, FileExt)
	return key, key != ""
}

var _ core.Slot = (*Slot)(nil)
var _ core.Initializer = (*Slot)(nil)
var _ core.Watchable = (*Slot)(nil)
