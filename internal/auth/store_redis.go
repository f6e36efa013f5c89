// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tributestream/internal/platform/constants"
)

// counter is the subset of [redis.Cmdable] the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisAttemptLimiter implements [AttemptLimiter] as a fixed window shared by
// every gateway replica.
type RedisAttemptLimiter struct {
	client counter
	limit  int64
	window time.Duration
}

// NewRedisAttemptLimiter creates a new RedisAttemptLimiter.
func NewRedisAttemptLimiter(client counter, limit int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client, limit: int64(limit), window: window}
}

/*
Allow increments the window counter for key.

Description: The first attempt in a window starts its TTL. Once the count
exceeds the limit, the remaining TTL is returned as the retry delay.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - time.Duration: Retry delay, zero when allowed
  - error: Redis failures
*/
func (limiter *RedisAttemptLimiter) Allow(context context.Context, key string) (time.Duration, error) {
	redisKey := constants.RedisPrefixAuthAttempt + key

	count, err := limiter.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_auth_attempt_incr_failed: %w", err)
	}

	if count == 1 {
		if err := limiter.client.Expire(context, redisKey, limiter.window).Err(); err != nil {
			return 0, fmt.Errorf("redis_auth_attempt_expire_failed: %w", err)
		}
	}

	if count <= limiter.limit {
		return 0, nil
	}

	ttl, err := limiter.client.TTL(context, redisKey).Result()
	if err != nil || ttl <= 0 {
		// A key without TTL would block forever; restart its window.
		_ = limiter.client.Expire(context, redisKey, limiter.window).Err()
		return limiter.window, nil
	}
	return ttl, nil
}
