package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`error and panic do not stop worker`, func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		var calls int32
		job := func(ctx context.Context) error {
			switch atomic.AddInt32(&calls, 1) {
			case 1:
				return errors.New("fail")
			case 2:
				panic("boom")
			}
			return nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			NewInstance("test", time.Second, time.Minute).WithClock(clock).Run(ctx, job)
			close(done)
		}()

		clock.BlockUntil(1)
		clock.Advance(time.Second)
		for n := int32(2); n <= 3; n++ {
			clock.BlockUntil(1)
			clock.Advance(time.Minute)
			expected := n
			require.Eventually(t, func() bool {
				return atomic.LoadInt32(&calls) == expected
			}, time.Second, 5*time.Millisecond)
		}

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker not stopped")
		}
	})
}
