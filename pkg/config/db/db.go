package db

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkify/mongo-init/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

var Client *mongo.Client

var DB *mongo.Database

// ClientOptions builds driver options from DBConfig. Timeouts given in the
// URI win over the defaults. Explicit credentials are only applied when
// MONGODB_USER is set.
func ClientOptions() *options.ClientOptions {
	opts := options.Client().
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		ApplyURI(config.DBConfig.URI)
	if config.DBConfig.User != "" {
		opts.SetAuth(options.Credential{
			AuthSource: config.DBConfig.AuthSource,
			Username:   config.DBConfig.User,
			Password:   config.DBConfig.Password,
		})
	}
	return opts
}

// Initialize connects, pings the primary and selects the configured
// database. The database itself is created by the server on first write.
func Initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, ClientOptions())
	if err != nil {
		return fmt.Errorf("mongodb: connect failed: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	Client = client
	DB = client.Database(config.DBConfig.Database)
	return nil
}

// Close disconnects the client, if any.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	err := Client.Disconnect(ctx)
	Client, DB = nil, nil
	return err
}
