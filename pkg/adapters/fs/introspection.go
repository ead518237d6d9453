package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// SlotState exposes internal state for observability.
type SlotState struct {
	Path          string     `json:"path"`
	MustExist     bool       `json:"must_exist"`
	WatcherActive bool       `json:"watcher_active"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SlotState{
		Path:          s.Path,
		MustExist:     s.config.MustExist,
		WatcherActive: s.watcherActive,
		LastWrite:     s.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)

func (s *Slot) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Slot) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
}
