package redisclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "bootstrap:lock:"
	lockPollEvery = 250 * time.Millisecond
)

// ErrLockHeld is returned when another run kept the lock for the whole wait.
var ErrLockHeld = errors.New("redis: bootstrap lock held by another run")

// releaseScript deletes the key only if it still holds our token, so an
// expired-and-retaken lock is never released by its previous owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a held bootstrap lock.
type Lock struct {
	key   string
	token string
}

func lockKey(name string) string {
	return lockKeyPrefix + name
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// AcquireLock takes the named lock, polling until wait elapses. The lock
// expires after ttl if the holder dies without releasing it.
func AcquireLock(ctx context.Context, name string, ttl, wait time.Duration) (*Lock, error) {
	if client == nil {
		return nil, errNotInitialized
	}
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("redis: lock token: %w", err)
	}
	l := &Lock{key: lockKey(name), token: token}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(lockPollEvery)
	defer ticker.Stop()
	for {
		ok, err := client.SetNX(ctx, l.key, l.token, ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("redis: acquire %q: %w", l.key, err)
		}
		if ok {
			return l, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockHeld, l.key)
		case <-ticker.C:
		}
	}
}

// Release frees the lock if it is still ours.
func (l *Lock) Release(ctx context.Context) error {
	if client == nil {
		return errNotInitialized
	}
	if err := releaseScript.Run(ctx, client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("redis: release %q: %w", l.key, err)
	}
	return nil
}
