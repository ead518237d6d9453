package core

import (
	"fmt"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key           string `json:"key"`
	SlotType      string `json:"slot_type"`
	Reads         int    `json:"reads"`
	Writes        int    `json:"writes"`
	ReadFailures  int    `json:"read_failures"`
	WriteFailures int    `json:"write_failures"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slotType := "unknown"
	if s.slot != nil {
		slotType = fmt.Sprintf("%T", s.slot)
		// Prefer the component name if the slot implements introspection.Component
		if comp, ok := s.slot.(introspection.Component); ok {
			slotType = comp.ComponentType()
		}
	}

	return StoreState{
		Key:           s.key,
		SlotType:      slotType,
		Reads:         s.stats.reads,
		Writes:        s.stats.writes,
		ReadFailures:  s.stats.readFailures,
		WriteFailures: s.stats.writeFailures,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
