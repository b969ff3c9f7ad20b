// Package ratelimit implements the login failure limiter: a rolling window
// of failed attempts per client IP, backed by Redis when available and an
// in-process map otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MaxFailures within Window blocks further attempts from that IP.
	MaxFailures = 5
	// Window is the rolling span failures are counted over.
	Window = 10 * time.Minute
)

// Limiter counts login failures per key. A blocked attempt consumes no
// additional failure, so the block always lifts once the window rolls past.
type Limiter struct {
	client *redis.Client
	now    func() time.Time

	mu    sync.Mutex
	local map[string][]time.Time
}

// New builds a limiter. client may be nil, in which case counting is kept
// in process memory.
func New(client *redis.Client) *Limiter {
	return &Limiter{
		client: client,
		now:    time.Now,
		local:  make(map[string][]time.Time),
	}
}

// Blocked reports whether the key has exhausted its failure budget within
// the current window.
func (l *Limiter) Blocked(ctx context.Context, key string) bool {
	return l.count(ctx, key) >= MaxFailures
}

// Fail records one failed attempt for the key.
func (l *Limiter) Fail(ctx context.Context, key string) {
	now := l.now()
	if l.client != nil {
		rkey := l.redisKey(key)
		pipe := l.client.Pipeline()
		pipe.ZAdd(ctx, rkey, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: fmt.Sprintf("%d", now.UnixNano()),
		})
		pipe.Expire(ctx, rkey, Window)
		if _, err := pipe.Exec(ctx); err == nil {
			return
		}
		// Redis down: fall through to the local map
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.local[key] = append(l.pruneLocked(key, now), now)
}

// Reset clears the failure count for the key, typically after a successful
// login.
func (l *Limiter) Reset(ctx context.Context, key string) {
	if l.client != nil {
		l.client.Del(ctx, l.redisKey(key))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.local, key)
}

func (l *Limiter) count(ctx context.Context, key string) int {
	now := l.now()
	if l.client != nil {
		rkey := l.redisKey(key)
		cutoff := fmt.Sprintf("%d", now.Add(-Window).UnixNano())
		pipe := l.client.Pipeline()
		pipe.ZRemRangeByScore(ctx, rkey, "0", cutoff)
		card := pipe.ZCard(ctx, rkey)
		if _, err := pipe.Exec(ctx); err == nil {
			return int(card.Val())
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.pruneLocked(key, now)
	l.local[key] = kept
	return len(kept)
}

func (l *Limiter) pruneLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-Window)
	var kept []time.Time
	for _, t := range l.local[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (l *Limiter) redisKey(key string) string {
	return "login_fail:" + key
}
