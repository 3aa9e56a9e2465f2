package web

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_UnlimitedByDefault(t *testing.T) {
	r := NewRateLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, r.Allow())
	}
}

func TestRateLimiter_BurstExhausted(t *testing.T) {
	r := NewRateLimiter(0.001, 2)

	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.False(t, r.Allow())
}

func TestRateLimiter_BackoffBlocksAllow(t *testing.T) {
	r := NewRateLimiter(0, 1)

	r.RecordRateLimitError(time.Minute)

	assert.False(t, r.Allow())
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRateLimiter(0, 1)
	r.now = func() time.Time { return now }

	r.RecordRateLimitError(0)

	assert.Equal(t, now.Add(defaultBackoff), r.retryAt)
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	r := NewRateLimiter(0, 1)
	r.RecordRateLimitError(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
