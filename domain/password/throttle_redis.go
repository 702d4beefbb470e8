package password

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
)

const (
	redisCountPrefix = "otp:req:"
	redisLockPrefix  = "otp:lock:"
	redisOpTimeout   = 2 * time.Second
)

// RedisThrottle is the shared throttle store for multi-instance deployments.
// Counters live in Redis so every instance sees the same per-email state.
// When Redis is unreachable the throttle fails open: a degraded rate limit is
// preferable to refusing all password resets.
type RedisThrottle struct {
	client       *redis.Client
	limit        int
	lockDuration time.Duration
}

func NewRedisThrottle(client *redis.Client, limit int, lockDuration time.Duration) *RedisThrottle {
	return &RedisThrottle{
		client:       client,
		limit:        limit,
		lockDuration: lockDuration,
	}
}

func (t *RedisThrottle) Locked(email string, _ time.Time) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	exists, err := t.client.Exists(ctx, redisLockPrefix+email).Result()
	if err != nil {
		logger.Get().WithComponent("password").Warn("Throttle lock check failed, failing open", logger.Err(err))
		return false
	}
	return exists > 0
}

func (t *RedisThrottle) Hit(email string, _ time.Time) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	count, err := t.client.Incr(ctx, redisCountPrefix+email).Result()
	if err != nil {
		logger.Get().WithComponent("password").Warn("Throttle increment failed, failing open", logger.Err(err))
		return false
	}

	if count >= int64(t.limit) {
		if err := t.client.Set(ctx, redisLockPrefix+email, "1", t.lockDuration).Err(); err != nil {
			logger.Get().WithComponent("password").Warn("Throttle lock set failed", logger.Err(err))
		}
		return true
	}
	return false
}
