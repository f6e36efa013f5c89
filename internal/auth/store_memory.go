// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryAttemptLimiter implements [AttemptLimiter] with per-key token buckets
// held in process. Used when no Redis is configured.
type MemoryAttemptLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    int
	every    rate.Limit
}

// NewMemoryAttemptLimiter allows limit attempts per window, refilled evenly.
func NewMemoryAttemptLimiter(limit int, window time.Duration) *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		every:    rate.Every(window / time.Duration(limit)),
	}
}

// Allow implements [AttemptLimiter]. It never fails.
func (limiter *MemoryAttemptLimiter) Allow(_ context.Context, key string) (time.Duration, error) {
	limiter.mu.Lock()
	bucket, found := limiter.limiters[key]
	if !found {
		bucket = rate.NewLimiter(limiter.every, limiter.limit)
		limiter.limiters[key] = bucket
	}
	limiter.mu.Unlock()

	reservation := bucket.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return delay, nil
	}
	return 0, nil
}

// Prune drops buckets that are full again, i.e. keys idle for a whole window.
func (limiter *MemoryAttemptLimiter) Prune() {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for key, bucket := range limiter.limiters {
		if bucket.Tokens() >= float64(limiter.limit) {
			delete(limiter.limiters, key)
		}
	}
}

// RunPruner calls Prune every interval until ctx is done.
func (limiter *MemoryAttemptLimiter) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.Prune()
		case <-ctx.Done():
			return
		}
	}
}
