package boundary_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/boundary"
)

func newRegistry(t *testing.T, opts ...boundary.RegistryOption) *boundary.Registry {
	t.Helper()
	r := boundary.NewRegistry([]boundary.Option{boundary.WithClock(clockwork.NewFakeClock())}, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("same client gets the same trap", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		require.Same(t, r.Trap(ctx, "client-a"), r.Trap(ctx, "client-a"))
		require.Equal(t, 1, r.Len())
	})

	t.Run("failure of one client does not trip another", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		r.Trap(ctx, "client-a").OnDescendantFailure(ctx, errors.New("boom"), boundary.ErrorInfo{})

		require.True(t, r.Trap(ctx, "client-a").Tripped())
		require.False(t, r.Trap(ctx, "client-b").Tripped())
	})

	t.Run("anonymous requests get a throwaway trap", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		require.NotSame(t, r.Trap(ctx, ""), r.Trap(ctx, ""))
		require.Equal(t, 0, r.Len())
	})

	t.Run("concurrent first requests share one trap", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)

		traps := make([]*boundary.Trap, 16)
		var wg sync.WaitGroup
		for i := range traps {
			wg.Add(1)
			go func() {
				defer wg.Done()
				traps[i] = r.Trap(ctx, "client-c")
			}()
		}
		wg.Wait()
		for _, tr := range traps[1:] {
			require.Same(t, traps[0], tr)
		}
	})

	t.Run("least recently seen client is dropped at capacity", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, boundary.WithMaxClients(2))
		first := r.Trap(ctx, "a")
		r.Trap(ctx, "b")
		r.Trap(ctx, "c")

		require.Equal(t, 2, r.Len())
		require.NotSame(t, first, r.Trap(ctx, "a"))
	})
}
