package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, "bootstrap:lock:thinkify", lockKey("thinkify"))
}

func TestNewToken_Unique(t *testing.T) {
	a, err := newToken()
	require.NoError(t, err)
	b, err := newToken()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestAcquireLock_NotInitialized(t *testing.T) {
	Close()
	_, err := AcquireLock(context.Background(), "thinkify", time.Second, time.Second)
	assert.ErrorIs(t, err, errNotInitialized)
	assert.False(t, IsAvailable())
	assert.ErrorIs(t, Ping(context.Background()), errNotInitialized)
}

// TestAcquireLock_Live needs a Redis at REDIS_TEST_ADDR.
func TestAcquireLock_Live(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	require.NoError(t, Initialize(addr, "", 0))
	t.Cleanup(Close)

	ctx := context.Background()
	name := "test-" + time.Now().Format("150405.000000000")

	first, err := AcquireLock(ctx, name, 5*time.Second, time.Second)
	require.NoError(t, err)

	_, err = AcquireLock(ctx, name, 5*time.Second, 300*time.Millisecond)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, first.Release(ctx))

	second, err := AcquireLock(ctx, name, 5*time.Second, time.Second)
	require.NoError(t, err)
	assert.NoError(t, second.Release(ctx))
}
