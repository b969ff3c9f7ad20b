package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	now := start
	l := New(nil)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestBlockAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	for i := 0; i < MaxFailures-1; i++ {
		l.Fail(ctx, "1.2.3.4")
		assert.False(t, l.Blocked(ctx, "1.2.3.4"), "attempt %d", i+1)
	}
	l.Fail(ctx, "1.2.3.4")
	assert.True(t, l.Blocked(ctx, "1.2.3.4"))

	// other IPs are unaffected
	assert.False(t, l.Blocked(ctx, "5.6.7.8"))
}

func TestWindowRollsPast(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLimiter(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	for i := 0; i < MaxFailures; i++ {
		l.Fail(ctx, "ip")
	}
	assert.True(t, l.Blocked(ctx, "ip"))

	// a blocked attempt records no failure, so the block lifts on its own
	*now = now.Add(Window + time.Second)
	assert.False(t, l.Blocked(ctx, "ip"))
}

func TestResetClearsFailures(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	for i := 0; i < MaxFailures; i++ {
		l.Fail(ctx, "ip")
	}
	assert.True(t, l.Blocked(ctx, "ip"))

	l.Reset(ctx, "ip")
	assert.False(t, l.Blocked(ctx, "ip"))
}

func TestPartialExpiry(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLimiter(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	l.Fail(ctx, "ip")
	l.Fail(ctx, "ip")
	*now = now.Add(Window + time.Second) // first two age out
	l.Fail(ctx, "ip")
	l.Fail(ctx, "ip")
	l.Fail(ctx, "ip")
	l.Fail(ctx, "ip")
	assert.False(t, l.Blocked(ctx, "ip"))

	l.Fail(ctx, "ip")
	assert.True(t, l.Blocked(ctx, "ip"))
}
