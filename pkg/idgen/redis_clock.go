package idgen

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-snowflake/pkg/resilience"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 50 * time.Millisecond

// redisTimer is the slice of the redis client used by RedisClock.
type redisTimer interface {
	Time(ctx context.Context) *redis.TimeCmd
}

// RedisClock uses the Redis TIME command so every worker of a fleet reads the
// same time source. Failures are reported as ErrClockUnavailable; after
// repeated failures the circuit breaker fails calls fast until Redis recovers.
type RedisClock struct {
	client  redisTimer
	timeout time.Duration
	breaker *resilience.CircuitBreaker
}

func NewRedisClock(client *redis.Client, timeout time.Duration) *RedisClock {
	return newRedisClock(client, timeout)
}

func newRedisClock(client redisTimer, timeout time.Duration) *RedisClock {
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &RedisClock{
		client:  client,
		timeout: timeout,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-clock",
			FailureThreshold: 3,
			OpenTimeout:      time.Second,
		}),
	}
}

func (r *RedisClock) Now() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var now time.Time
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		// TIME returns [seconds, microseconds]
		res, err := r.client.Time(ctx).Result()
		if err != nil {
			return err
		}
		now = res
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: redis TIME: %v", ErrClockUnavailable, err)
	}

	ms := now.UnixMilli()
	if ms < 0 {
		return 0, ErrTimeBeforeUnixEpoch
	}
	return ms, nil
}
