package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
)

// New opens the configured slot and returns a store on top of it.
// Adapters holding connections (sqlite, mysql, postgres) are rejected
// because the caller could never close them; use Open for those.
//
//	store, err := jot.New("./data", jot.WithLogger(logger))
func New(uri string, opts ...Option) (*core.Store, error) {
	store, slot, err := Open(context.Background(), uri, opts...)
	if err != nil {
		return nil, err
	}
	if _, ok := slot.(interface{ Close() error }); ok {
		closeSlot(slot)
		return nil, fmt.Errorf("adapter %T must be closed after use: open it with Open", slot)
	}
	return store, nil
}

// Open is like New but also returns the slot, so callers can Close it or
// Watch it when the backend supports that.
func Open(ctx context.Context, uri string, opts ...Option) (*core.Store, core.Slot, error) {
	o := buildOptions(opts)

	slot, err := initSlot(ctx, uri, o)
	if err != nil {
		return nil, nil, err
	}

	storeOpts := append([]core.StoreOption{core.WithLogger(o.logger)}, o.storeOpts...)
	if o.diagnostics != nil {
		storeOpts = append(storeOpts, core.WithDiagnostics(o.diagnostics))
	}

	return core.NewStore(slot, storeOpts...), slot, nil
}
