package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheLookup(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func newTestCache(t *testing.T) (*RedisAvailabilityCache, *miniredis.Miniredis, *countingObserver) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	obs := &countingObserver{}
	c := NewRedisAvailabilityCache(rdb, time.Minute, zerolog.Nop()).WithObserver(obs)
	return c, mr, obs
}

// fill looks up and stores av under the key Get handed out.
func fill(t *testing.T, c *RedisAvailabilityCache, barberID uint, date string, av domain.Availability) {
	t.Helper()
	_, key, _ := c.Get(context.Background(), barberID, date)
	require.NotEmpty(t, key)
	c.Set(context.Background(), key, av)
}

func TestCacheRoundTrip(t *testing.T) {
	c, _, obs := newTestCache(t)
	ctx := context.Background()

	_, key, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)

	av := domain.Availability{Date: "2030-01-10", Slots: []string{"09:00", "10:30"}}
	c.Set(ctx, key, av)

	got, _, ok := c.Get(ctx, 1, "2030-01-10")
	require.True(t, ok)
	assert.Equal(t, av, *got)

	_, _, ok = c.Get(ctx, 2, "2030-01-10")
	assert.False(t, ok)

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 2, obs.misses)
}

func TestInvalidateHidesOldEntry(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10", Slots: []string{"09:00"}})
	fill(t, c, 1, "2030-01-11", domain.Availability{Date: "2030-01-11", Slots: []string{"09:00"}})

	c.Invalidate(ctx, 1, "2030-01-10")

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 1, "2030-01-11")
	assert.True(t, ok, "other dates keep their entries")

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10", Slots: []string{}})
	got, _, ok := c.Get(ctx, 1, "2030-01-10")
	require.True(t, ok)
	assert.Empty(t, got.Slots)
}

func TestSetAfterInvalidateIsNeverServed(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	// a reader looks up, a booking commits and invalidates, then the
	// reader stores what it computed before the booking
	_, staleKey, _ := c.Get(ctx, 1, "2030-01-10")
	c.Invalidate(ctx, 1, "2030-01-10")
	c.Set(ctx, staleKey, domain.Availability{Date: "2030-01-10", Slots: []string{"09:00"}})

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
}

func TestInvalidateBarberHidesAllDates(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10"})
	fill(t, c, 1, "2030-01-11", domain.Availability{Date: "2030-01-11"})
	fill(t, c, 2, "2030-01-10", domain.Availability{Date: "2030-01-10"})

	c.InvalidateBarber(ctx, 1)

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 1, "2030-01-11")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 2, "2030-01-10")
	assert.True(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10"})
	mr.FastForward(2 * time.Minute)

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
}

func TestRedisDownIsAMiss(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	mr.Close()

	_, key, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	assert.Empty(t, key)
	c.Set(ctx, key, domain.Availability{Date: "2030-01-10"})
	c.Invalidate(ctx, 1, "2030-01-10")
}

func TestFailedInvalidateBypassesStaleEntry(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10", Slots: []string{"09:00", "10:30"}})
	_, staleKey, _ := c.Get(ctx, 1, "2030-01-10")
	require.NotEmpty(t, staleKey)

	mr.SetError("LOADING redis is loading")
	c.Invalidate(ctx, 1, "2030-01-10")
	mr.SetError("")

	got, key, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Empty(t, key)

	c.Set(ctx, staleKey, domain.Availability{Date: "2030-01-10", Slots: []string{"09:00"}})
	_, _, ok = c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok, "writes for a dirty day are dropped")

	_, _, ok = c.Get(ctx, 2, "2030-01-10")
	assert.False(t, ok)
	fill(t, c, 2, "2030-01-10", domain.Availability{Date: "2030-01-10"})
	_, _, ok = c.Get(ctx, 2, "2030-01-10")
	assert.True(t, ok, "other barbers keep caching")
}

func TestFailedInvalidateBarberBypassesAllDates(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10"})
	fill(t, c, 1, "2030-01-11", domain.Availability{Date: "2030-01-11"})

	mr.SetError("READONLY replica")
	c.InvalidateBarber(ctx, 1)
	mr.SetError("")

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 1, "2030-01-11")
	assert.False(t, ok)
}

func TestDirtyMarkExpires(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	now := time.Date(2030, 1, 9, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	mr.SetError("LOADING redis is loading")
	c.Invalidate(ctx, 1, "2030-01-10")
	mr.SetError("")

	_, _, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)

	// counters written before the failure have expired by now as well
	now = now.Add(2*time.Minute + time.Second)
	mr.FastForward(2*time.Minute + time.Second)

	fill(t, c, 1, "2030-01-10", domain.Availability{Date: "2030-01-10"})
	_, _, ok = c.Get(ctx, 1, "2030-01-10")
	assert.True(t, ok)
}

func TestMalformedKeyIsIgnored(t *testing.T) {
	c, mr, _ := newTestCache(t)

	c.Set(context.Background(), "bogus", domain.Availability{})
	assert.False(t, mr.Exists("bogus"))
}

func TestNoopCache(t *testing.T) {
	var c NoopCache
	ctx := context.Background()

	c.Set(ctx, "", domain.Availability{})
	_, key, ok := c.Get(ctx, 1, "2030-01-10")
	assert.False(t, ok)
	assert.Empty(t, key)
}
