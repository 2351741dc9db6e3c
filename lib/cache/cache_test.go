package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func newTestCache() (Provider, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return NewInstance(clock, Config{}), clock
}

func TestCacheTTL(t *testing.T) {
	t.Run(`value is present until ttl expires`, func(t *testing.T) {
		c, clock := newTestCache()
		c.Set("k", "v", time.Minute)

		clock.Advance(time.Minute - time.Millisecond)
		value, ok := c.Get("k")
		require.True(t, ok)
		require.Equal(t, "v", value)

		clock.Advance(2 * time.Millisecond)
		value, ok = c.Get("k")
		require.False(t, ok)
		require.Nil(t, value)
		require.Equal(t, 0, c.Stats().Size)
	})
	t.Run(`value at exact ttl is stale`, func(t *testing.T) {
		c, clock := newTestCache()
		c.Set("k", 1, time.Minute)
		clock.Advance(time.Minute)
		require.False(t, c.Has("k"))
	})
	t.Run(`zero ttl means default ttl`, func(t *testing.T) {
		c, clock := newTestCache()
		c.Set("k", 1, 0)
		clock.Advance(DefaultTTL - time.Second)
		require.True(t, c.Has("k"))
		clock.Advance(time.Second)
		require.False(t, c.Has("k"))
	})
	t.Run(`overwrite replaces value and restarts ttl`, func(t *testing.T) {
		c, clock := newTestCache()
		c.Set("k", 1, time.Minute)
		clock.Advance(50 * time.Second)
		c.Set("k", 2, time.Minute)
		clock.Advance(50 * time.Second)
		value, ok := c.Get("k")
		require.True(t, ok)
		require.Equal(t, 2, value)
	})
	t.Run(`typed helpers use realtime ttl`, func(t *testing.T) {
		c, clock := newTestCache()
		c.SetDashboardStats("u1", "stats")
		c.SetProfiles("profiles")
		clock.Advance(RealtimeTTL)
		_, ok := c.GetDashboardStats("u1")
		require.False(t, ok)
		_, ok = c.GetProfiles()
		require.True(t, ok)
	})
}

func TestCacheDeleteClear(t *testing.T) {
	c, _ := newTestCache()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Delete("a")
	require.False(t, c.Has("a"))
	require.True(t, c.Has("b"))
	c.Delete("missing")
	c.Clear()
	require.Equal(t, Stats{Size: 0, Keys: []string{}}, c.Stats())
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache()
	c.Set("short", 1, time.Minute)
	c.Set("short2", 1, time.Minute)
	c.Set("long", 1, time.Hour)
	require.Equal(t, 0, c.Cleanup())

	clock.Advance(2 * time.Minute)
	require.Equal(t, 2, c.Cleanup())
	require.Equal(t, []string{"long"}, c.Stats().Keys)
}

func TestCacheInvalidation(t *testing.T) {
	fill := func(c Provider) {
		c.SetProfiles([]string{"p"})
		for _, id := range []string{"u1", "u2"} {
			c.SetDashboardStats(id, id)
			c.SetTasks(id, id)
			c.SetLeaveRequests(id, id)
		}
	}
	t.Run(`user invalidation touches only that user`, func(t *testing.T) {
		c, _ := newTestCache()
		fill(c)
		c.InvalidateUserData("u1")
		require.Equal(t, []string{
			"dashboard-stats-u2",
			"leaves-u2",
			"profiles",
			"tasks-u2",
		}, c.Stats().Keys)
	})
	t.Run(`global invalidation drops profiles and every dashboard`, func(t *testing.T) {
		c, _ := newTestCache()
		fill(c)
		c.InvalidateGlobalData()
		require.Equal(t, []string{
			"leaves-u1",
			"leaves-u2",
			"tasks-u1",
			"tasks-u2",
		}, c.Stats().Keys)
	})
	t.Run(`keys`, func(t *testing.T) {
		require.Equal(t, "profiles", ProfilesKey())
		require.Equal(t, "dashboard-stats-x", DashboardStatsKey("x"))
		require.Equal(t, "tasks-x", TasksKey("x"))
		require.Equal(t, "leaves-x", LeavesKey("x"))
	})
}
