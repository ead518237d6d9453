// Package memory provides an in-process core.Slot.
// It backs tests and ephemeral sessions; nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jot/pkg/core"
)

// Slot implements core.Slot over a map.
type Slot struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSlot creates an empty in-memory slot, optionally seeded with values.
func NewSlot(seed map[string]string) *Slot {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Slot{values: values}
}

// Get returns the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (s *Slot) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{"keys": len(s.values)}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "memory"
}

var _ core.Slot = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
