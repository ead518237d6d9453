package fs_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSlot_ReadersNeverSeeTornWrites hammers one key with writers of
// distinct, same-length payloads while readers check every value they see
// is one of them in full.
func TestSlot_ReadersNeverSeeTornWrites(t *testing.T) {
	slot, _ := setupSlot(t)
	ctx := context.Background()
	require.NoError(t, slot.Initialize(ctx))

	payloads := []string{
		strings.Repeat("a", 64*1024),
		strings.Repeat("b", 64*1024),
		strings.Repeat("c", 64*1024),
	}
	valid := make(map[string]bool, len(payloads))
	for _, p := range payloads {
		valid[p] = true
	}
	require.NoError(t, slot.Set(ctx, "hot", payloads[0]))

	const rounds = 50
	var wg sync.WaitGroup
	errs := make(chan error, len(payloads))

	for _, p := range payloads {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := slot.Set(ctx, "hot", p); err != nil {
					errs <- err
					return
				}
			}
		}(p)
	}

	var torn int
	var mu sync.Mutex
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				v, found, err := slot.Get(ctx, "hot")
				if err != nil || !found || !valid[v] {
					mu.Lock()
					torn++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Zero(t, torn, "a reader observed a partial or missing value")
}
