package cachesweepworker

import (
	"context"
	"time"

	"staff-portal-backend/lib/cache"
	baseworker "staff-portal-backend/lib/utils/base-worker"

	"github.com/jonboulle/clockwork"
)

const DefaultInterval = 10 * time.Minute

func StartWorker(ctx context.Context, cacheProvider cache.Provider, interval time.Duration) {
	startWorker(ctx, cacheProvider, interval, clockwork.NewRealClock())
}

func startWorker(ctx context.Context, cacheProvider cache.Provider, interval time.Duration, clock clockwork.Clock) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	i := &impl{
		BaseImpl: *baseworker.NewInstance("CacheSweepWorker", interval, interval).WithClock(clock),
		cache:    cacheProvider,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	cache cache.Provider
}

func (i impl) handle(_ context.Context) error {
	removed := i.cache.Cleanup()
	if removed == 0 {
		return nil
	}
	i.GetLogger().
		WithField("removed", removed).
		WithField("size", i.cache.Stats().Size).
		Debug("Удалены просроченные записи кэша")
	return nil
}
