package firewall

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

// GuardRateLimit is the name of [RateLimitGuard].
const GuardRateLimit = "Rate Limiting"

// RateLimitGuard enforces a fixed-window request quota per service.
//
// Windows are aligned to the unix epoch: bucket = floor(now / window). A
// client can therefore send up to twice the quota across a window boundary.
type RateLimitGuard struct {
	counter store.RateCounter
	now     func() time.Time
}

func NewRateLimitGuard(counter store.RateCounter, opts ...Option) *RateLimitGuard {
	o := newOptions(opts)
	return &RateLimitGuard{counter: counter, now: o.now}
}

func (g *RateLimitGuard) Name() string {
	return GuardRateLimit
}

func (g *RateLimitGuard) Inspect(ctx context.Context, service models.ServiceConfig, _ *models.Inspection) error {
	limit := int64(service.RateLimitRequests)
	if limit <= 0 {
		return nil
	}

	window := int64(service.RateLimitWindow)
	if window <= 0 {
		window = models.DefaultRateLimitWindow
	}

	key := RateLimitKey(service.ID, g.now().Unix()/window)

	count, err := g.counter.Count(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCounterFailed, err)
	}
	if count >= limit {
		return reject(GuardRateLimit, "Rate limit exceeded. Try again later.")
	}

	count, err = g.counter.Increment(ctx, key, time.Duration(window)*time.Second)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCounterFailed, err)
	}
	// a concurrent request took the last slot between Count and Increment
	if count > limit {
		return reject(GuardRateLimit, "Rate limit exceeded. Try again later.")
	}

	return nil
}

// RateLimitKey builds the counter key for a service and window bucket.
func RateLimitKey(serviceID, bucket int64) string {
	return fmt.Sprintf("ratelimit:%d:%d", serviceID, bucket)
}
