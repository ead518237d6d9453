// Package lifecycle exposes slot change feeds as lifecycle sources.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

type slotSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that forwards slot change events.
// core.Event satisfies lifecycle.Event through its String method.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &slotSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

// WatchSource starts watching slot and wraps the feed as a lifecycle.Source.
func WatchSource(ctx context.Context, slot core.Slot, pattern string) (lifecycle.Source, error) {
	w, ok := slot.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("slot %T does not support watching", slot)
	}
	events, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return NewSource(events), nil
}

func (s *slotSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx ends or the upstream feed closes.
func (s *slotSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
