package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
)

// incrementScript increments the counter and sets the expiry only when the
// key was just created, so the window never slides.
var incrementScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisRateCounter is a [RateCounter] shared by every hub instance pointing
// at the same Redis.
type RedisRateCounter struct {
	client *redis.Client
}

// NewRedisRateCounter connects to Redis and verifies the connection.
func NewRedisRateCounter(ctx context.Context, cfg config.Redis, log *logger.Logger) (*RedisRateCounter, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("%w: redis address is required", ErrCounterUnavailable)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisRateCounter").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	log.Info().Str("func", "NewRedisRateCounter").Msg("connected to redis successfully")

	return &RedisRateCounter{client: client}, nil
}

func (c *RedisRateCounter) Count(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	return n, nil
}

func (c *RedisRateCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	ttlMillis := ttl.Milliseconds()
	if ttlMillis <= 0 {
		ttlMillis = 1000
	}

	n, err := incrementScript.Run(ctx, c.client, []string{key}, ttlMillis).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	return n, nil
}

func (c *RedisRateCounter) Close() error {
	return c.client.Close()
}
