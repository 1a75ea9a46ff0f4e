package blizzard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewRateLimiter(5, time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		start := time.Now()
		require.NoError(t, limiter.Wait(ctx))
		assert.Less(t, time.Since(start), 50*time.Millisecond, "request %d should not block", i)
	}

	assert.Equal(t, 0, limiter.Remaining())
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	limiter := NewRateLimiter(2, 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))
	require.NoError(t, limiter.Wait(ctx))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond, "third request should wait for a refill")
}

func TestRateLimiter_RefillsAfterInterval(t *testing.T) {
	limiter := NewRateLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))
	assert.Equal(t, 0, limiter.Remaining())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, limiter.Remaining())

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Second)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
