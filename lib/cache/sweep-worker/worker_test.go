package cachesweepworker

import (
	"context"
	"testing"
	"time"

	"staff-portal-backend/lib/cache"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestSweepWorker(t *testing.T) {
	t.Run(`expired entries are removed on interval`, func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		provider := cache.NewInstance(clock, cache.Config{})
		provider.Set("short", 1, time.Minute)
		provider.Set("long", 2, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		startWorker(ctx, provider, 10*time.Minute, clock)

		clock.BlockUntil(1)
		clock.Advance(10 * time.Minute)

		require.Eventually(t, func() bool {
			return provider.Stats().Size == 1
		}, time.Second, 10*time.Millisecond)
		require.Equal(t, []string{"long"}, provider.Stats().Keys)
	})
}
