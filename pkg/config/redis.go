package config

import (
	"fmt"
	"time"

	"github.com/jinzhu/configor"
)

// Redis is only used for the bootstrap lock. An empty Addr disables it.
type redisConfig struct {
	Addr     string `env:"REDIS_ADDR" default:""`
	Password string `env:"REDIS_PASSWORD" default:""`
	DB       int    `env:"REDIS_DB" default:"0"`
	LockTTL  string `env:"BOOTSTRAP_LOCK_TTL" default:"5m"`
	LockWait string `env:"BOOTSTRAP_LOCK_WAIT" default:"1m"`
}

var RedisConfig = redisConfig{}

// LockTTL is how long a held bootstrap lock survives a crashed holder.
// The lock is never renewed; runs raise it to cover their worst case.
var LockTTL = 5 * time.Minute

// LockWait is how long a run waits for another run's lock before failing.
var LockWait = time.Minute

// loadRedis loads Redis configuration. Called from LoadAll().
func loadRedis() error {
	if err := configor.Load(&RedisConfig); err != nil {
		return fmt.Errorf("redis configor load: %w", err)
	}
	ttl, err := parsePositiveDuration("BOOTSTRAP_LOCK_TTL", RedisConfig.LockTTL)
	if err != nil {
		return err
	}
	wait, err := parsePositiveDuration("BOOTSTRAP_LOCK_WAIT", RedisConfig.LockWait)
	if err != nil {
		return err
	}
	LockTTL, LockWait = ttl, wait
	return nil
}

// LockEnabled reports whether runs should coordinate through Redis.
func LockEnabled() bool {
	return RedisConfig.Addr != ""
}
