package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix marks in-flight slot files. Keys may not start with it and
// the watcher ignores files carrying it.
const TempFilePrefix = "jot-tmp-"

// filePerm is the mode of slot files.
const filePerm os.FileMode = 0644

// syncDir flushes a directory entry to stable storage. It is a variable so
// tests can observe the call.
var syncDir = func(dir string) error {
	// Directory handles cannot be fsynced on Windows; rename is durable there.
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// replaceFile swaps path's content for value. The value goes to a synced
// temp file in the same directory, is renamed over path, and the directory
// is synced so the rename itself survives a crash. Readers see either the
// previous collection or the new one, never a mix.
func replaceFile(path, value string) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.WriteString(tmp, value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	// The rename has happened; only its durability is still at stake.
	if serr := syncDir(dir); serr != nil {
		return fmt.Errorf("failed to sync directory %s: %w", dir, serr)
	}
	return nil
}
