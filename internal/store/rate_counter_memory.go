package store

import (
	"context"
	"sync"
	"time"
)

type memoryCounter struct {
	value     int64
	expiresAt time.Time
}

// MemoryRateCounter is a process-local [RateCounter]. Limits are enforced
// per instance only.
type MemoryRateCounter struct {
	mu       sync.Mutex
	counters map[string]memoryCounter
	now      func() time.Time
}

// NewMemoryRateCounter returns an empty counter. A nil clock means time.Now.
func NewMemoryRateCounter(now func() time.Time) *MemoryRateCounter {
	if now == nil {
		now = time.Now
	}
	return &MemoryRateCounter{
		counters: make(map[string]memoryCounter),
		now:      now,
	}
}

func (c *MemoryRateCounter) Count(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.counters[key]
	if !ok {
		return 0, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.counters, key)
		return 0, nil
	}
	return entry.value, nil
}

func (c *MemoryRateCounter) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry, ok := c.counters[key]
	if !ok || !now.Before(entry.expiresAt) {
		entry = memoryCounter{expiresAt: now.Add(ttl)}
	}
	entry.value++
	c.counters[key] = entry

	c.evictExpired(now)

	return entry.value, nil
}

// evictExpired drops stale buckets once the map grows; bucket keys change
// every window so without this the map would only grow.
func (c *MemoryRateCounter) evictExpired(now time.Time) {
	if len(c.counters) < 1024 {
		return
	}
	for k, v := range c.counters {
		if !now.Before(v.expiresAt) {
			delete(c.counters, k)
		}
	}
}
