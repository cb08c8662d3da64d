package cmd

import (
	"context"
	"os"
	"time"

	"github.com/thinkify/mongo-init/pkg/config"
	"github.com/thinkify/mongo-init/pkg/config/db"
	"github.com/thinkify/mongo-init/pkg/logger"
	mongodb "github.com/thinkify/mongo-init/pkg/mongoDB"
	redisclient "github.com/thinkify/mongo-init/pkg/redis"
)

// connect opens the MongoDB client and, when configured, the Redis client
// used for the bootstrap lock. Pair with disconnect.
func connect(ctx context.Context) error {
	if err := db.Initialize(ctx); err != nil {
		return mongodb.ClassifyConnect(err)
	}
	if config.LockEnabled() {
		if err := redisclient.Initialize(config.RedisConfig.Addr, config.RedisConfig.Password, config.RedisConfig.DB); err != nil {
			_ = db.Close(context.Background())
			return err
		}
	}
	return nil
}

func disconnect() {
	redisclient.Close()
	if err := db.Close(context.Background()); err != nil {
		logger.Logger.Warnw("mongodb disconnect failed", "error", err)
	}
}

// actor names the identity recorded in audit entries.
func actor() string {
	if config.DBConfig.User != "" {
		return config.DBConfig.User
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "bootstrap"
}

// lockTTL covers the worst case of a run, every step hitting OpTimeout,
// plus one step of slack. The lock is not renewed while held.
func lockTTL(steps int) time.Duration {
	worst := time.Duration(steps+1) * config.OpTimeout
	if config.LockTTL > worst {
		return config.LockTTL
	}
	return worst
}

// runBootstrap ensures the schema on db.DB, serialised through the Redis
// lock when one is configured.
func runBootstrap(ctx context.Context) (*mongodb.Report, error) {
	if redisclient.IsAvailable() {
		ttl := lockTTL(mongodb.DefaultSchema().Steps())
		lock, err := redisclient.AcquireLock(ctx, db.DB.Name(), ttl, config.LockWait)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil {
				logger.Logger.Warnw("bootstrap lock release failed", "error", err)
			}
		}()
	}

	return mongodb.InitAll(ctx, db.DB,
		mongodb.WithOpTimeout(config.OpTimeout),
		mongodb.WithActor(actor()),
	)
}
