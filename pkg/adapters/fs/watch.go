package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// Watch reports changes to slot files made by any process, including this one.
// Atomic replacement shows up as a single event on the target file; temp files
// are ignored. pattern is a doublestar glob over keys ("" or "*" for all).
func (s *Slot) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	w := &slotWatcher{
		slot:    s,
		pattern: pattern,
		watcher: watcher,
		known:   s.existingKeys(),
		events:  make(chan core.Event, 16),
	}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return w.events, nil
}

type slotWatcher struct {
	slot    *Slot
	pattern string
	watcher *fsnotify.Watcher
	known   map[string]bool
	events  chan core.Event
}

// run is the main event loop for the watcher.
func (w *slotWatcher) run(ctx context.Context) (err error) {
	logger := w.slot.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// Stack only at debug level to keep production logs short.
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.slot.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if e, emit := w.translate(event); emit {
				select {
				case w.events <- e:
				case <-ctx.Done():
					return nil
				}
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.slot.handleWatchError(wErr)
		}
	}
}

// translate maps a raw fsnotify event to a slot event.
func (w *slotWatcher) translate(event fsnotify.Event) (core.Event, bool) {
	key, ok := keyOf(event.Name)
	if !ok {
		return core.Event{}, false
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if !w.known[key] {
			return core.Event{}, false
		}
		delete(w.known, key)
		eType = core.EventDelete
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if w.known[key] {
			eType = core.EventModify
		} else {
			w.known[key] = true
			eType = core.EventCreate
		}
	default:
		return core.Event{}, false
	}

	w.slot.config.Logger.Debug("slot changed", "key", key, "type", eType)
	return core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()}, true
}

// existingKeys lists the slot files present when a watch starts.
func (s *Slot) existingKeys() map[string]bool {
	known := make(map[string]bool)
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return known
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyOf(e.Name()); ok {
			known[key] = true
		}
	}
	return known
}

// handleWatchError processes errors from the fsnotify watcher.
func (s *Slot) handleWatchError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	s.config.Logger.Error("fsnotify error", "error", err)
}
