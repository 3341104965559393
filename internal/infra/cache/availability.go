// Package cache keeps resolved availability in redis.
//
// Entries are addressed through two counters: a barber generation bumped
// when the slot templates change and a per-day version bumped after every
// booking, cancellation or expiry. A write never deletes an entry, it
// moves the counters so that readers compute a key nobody has filled yet.
//
// When a counter cannot be moved the affected barber or day is held dirty
// in process for twice the entry TTL. Dirty lookups miss and dirty writes
// are dropped, so an entry filled before the failure is never served.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
)

// Observer is notified of cache hits and misses.
type Observer interface {
	CacheLookup(hit bool)
}

type RedisAvailabilityCache struct {
	rdb      *redis.Client
	ttl      time.Duration
	logger   zerolog.Logger
	observer Observer

	mu    sync.Mutex
	dirty map[string]time.Time
	now   func() time.Time
}

func NewRedisAvailabilityCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "availability_cache").Logger(),
		dirty:  make(map[string]time.Time),
		now:    time.Now,
	}
}

// WithObserver attaches hit/miss reporting.
func (c *RedisAvailabilityCache) WithObserver(o Observer) *RedisAvailabilityCache {
	c.observer = o
	return c
}

func genKey(barberID uint) string {
	return fmt.Sprintf("avail:gen:%d", barberID)
}

func versionKey(barberID uint, date string) string {
	return fmt.Sprintf("avail:ver:%d:%s", barberID, date)
}

func (c *RedisAvailabilityCache) entryKey(ctx context.Context, barberID uint, date string) (string, error) {
	vals, err := c.rdb.MGet(ctx, genKey(barberID), versionKey(barberID, date)).Result()
	if err != nil {
		return "", err
	}
	gen, ver := counter(vals[0]), counter(vals[1])
	return fmt.Sprintf("avail:%d:%s:g%s:v%s", barberID, date, gen, ver), nil
}

func parseEntryKey(key string) (uint, string, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 5 || parts[0] != "avail" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return uint(id), parts[2], true
}

func counter(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "0"
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, barberID uint, date string) (*domain.Availability, domain.CacheKey, bool) {
	if c.isDirty(barberID, date) {
		c.report(false)
		return nil, "", false
	}

	key, err := c.entryKey(ctx, barberID, date)
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache key lookup failed")
		c.report(false)
		return nil, "", false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		c.report(false)
		return nil, domain.CacheKey(key), false
	}

	var av domain.Availability
	if err := json.Unmarshal(raw, &av); err != nil {
		c.report(false)
		return nil, domain.CacheKey(key), false
	}
	c.report(true)
	return &av, domain.CacheKey(key), true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, key domain.CacheKey, av domain.Availability) {
	if c.ttl <= 0 || key == "" {
		return
	}
	barberID, date, ok := parseEntryKey(string(key))
	if !ok || c.isDirty(barberID, date) {
		return
	}
	data, err := json.Marshal(av)
	if err != nil {
		return
	}

	// counters must outlive every entry they address
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, string(key), data, c.ttl)
	pipe.Expire(ctx, genKey(barberID), 2*c.ttl)
	pipe.Expire(ctx, versionKey(barberID, date), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn().Err(err).Str("key", string(key)).Msg("cache write failed")
	}
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, barberID uint, date string) {
	if !c.bump(ctx, versionKey(barberID, date)) {
		c.markDirty(dirtyDay(barberID, date))
	}
}

func (c *RedisAvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if !c.bump(ctx, genKey(barberID)) {
		c.markDirty(dirtyBarber(barberID))
	}
}

func (c *RedisAvailabilityCache) bump(ctx context.Context, key string) bool {
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	if c.ttl > 0 {
		pipe.Expire(ctx, key, 2*c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("cache invalidation failed, bypassing cache")
		return false
	}
	return true
}

// --------------------------------------------------
// Dirty set
// --------------------------------------------------

func dirtyBarber(barberID uint) string {
	return fmt.Sprintf("b:%d", barberID)
}

func dirtyDay(barberID uint, date string) string {
	return fmt.Sprintf("d:%d:%s", barberID, date)
}

func (c *RedisAvailabilityCache) markDirty(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[key] = c.now().Add(2 * c.ttl)
}

func (c *RedisAvailabilityCache) isDirty(barberID uint, date string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.dirty) == 0 {
		return false
	}

	now := c.now()
	for _, key := range []string{dirtyBarber(barberID), dirtyDay(barberID, date)} {
		until, ok := c.dirty[key]
		if !ok {
			continue
		}
		if now.Before(until) {
			return true
		}
		delete(c.dirty, key)
	}
	return false
}

func (c *RedisAvailabilityCache) report(hit bool) {
	if c.observer != nil {
		c.observer.CacheLookup(hit)
	}
}

// NoopCache is used when redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint, string) (*domain.Availability, domain.CacheKey, bool) {
	return nil, "", false
}
func (NoopCache) Set(context.Context, domain.CacheKey, domain.Availability) {}
func (NoopCache) Invalidate(context.Context, uint, string)                  {}
func (NoopCache) InvalidateBarber(context.Context, uint)                    {}

var (
	_ domain.AvailabilityCache = (*RedisAvailabilityCache)(nil)
	_ domain.AvailabilityCache = NoopCache{}
)
