package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisKeyPrefix namespaces limiter counters in a shared Redis instance.
const redisKeyPrefix = "ratelimit:"

// allowScript increments the counter and arms the window TTL in one atomic
// step. A plain INCR followed by PEXPIRE can be interrupted between the two
// commands, leaving a counter with no expiry that denies the key forever; the
// script also re-arms any key found without a TTL. Returns {count, ttlMillis}.
var allowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// NewRedisClient builds a Redis client for the limiter backend.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisLimiter is a fixed-window limiter whose counters live in Redis with a
// TTL, so multiple instances share one admission budget per client key.
type RedisLimiter struct {
	rdb    *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter admitting up to limit requests per key
// per window, counted in the given Redis instance.
func NewRedisLimiter(rdb *redis.Client, logger *slog.Logger, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Allow increments the key's counter and attaches the window TTL atomically.
// If Redis is unreachable the limiter fails open: admitting a request is
// cheaper than refusing all traffic on a cache outage.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	rkey := redisKeyPrefix + key

	res, err := allowScript.Run(ctx, l.rdb, []string{rkey}, l.window.Milliseconds()).Result()
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit counter unavailable, admitting request",
			"error", err,
			"key", key)
		return true, 0
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		l.logger.WarnContext(ctx, "unexpected rate limit script reply, admitting request",
			"key", key)
		return true, 0
	}
	count, _ := vals[0].(int64)
	ttlMillis, _ := vals[1].(int64)

	if count > int64(l.limit) {
		ttl := time.Duration(ttlMillis) * time.Millisecond
		if ttl <= 0 {
			ttl = l.window
		}
		return false, ttl
	}

	return true, 0
}
