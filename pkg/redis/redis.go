package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errNotInitialized = errors.New("redis: client not initialized")

var client *redis.Client

// Initialize creates and tests a Redis connection. The bootstrap only
// holds one key at a time, so the pool is small.
func Initialize(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.Ping(ctx).Result(); err != nil {
		c.Close()
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	client = c
	return nil
}

// Close shuts down the Redis client.
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// IsAvailable returns true when the client is initialized.
func IsAvailable() bool {
	return client != nil
}

// Ping checks the connection liveness.
func Ping(ctx context.Context) error {
	if client == nil {
		return errNotInitialized
	}
	_, err := client.Ping(ctx).Result()
	return err
}
