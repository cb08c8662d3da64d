package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thinkify/mongo-init/pkg/config"
)

func TestClientOptions_WithoutUser(t *testing.T) {
	config.DBConfig.URI = "mongodb://localhost:27017"
	config.DBConfig.User = ""
	t.Cleanup(func() { config.DBConfig.URI = "" })

	opts := ClientOptions()
	assert.Nil(t, opts.Auth)
	assert.Equal(t, []string{"localhost:27017"}, opts.Hosts)
}

func TestClientOptions_WithUser(t *testing.T) {
	config.DBConfig.URI = "mongodb://localhost:27017"
	config.DBConfig.User = "root"
	config.DBConfig.Password = "example"
	config.DBConfig.AuthSource = "admin"
	t.Cleanup(func() {
		config.DBConfig.URI, config.DBConfig.User, config.DBConfig.Password, config.DBConfig.AuthSource = "", "", "", ""
	})

	opts := ClientOptions()
	if assert.NotNil(t, opts.Auth) {
		assert.Equal(t, "root", opts.Auth.Username)
		assert.Equal(t, "example", opts.Auth.Password)
		assert.Equal(t, "admin", opts.Auth.AuthSource)
	}
}

func TestClose_NotInitialized(t *testing.T) {
	Client, DB = nil, nil
	assert.NoError(t, Close(context.Background()))
}

func TestClientOptions_URITimeoutsWin(t *testing.T) {
	config.DBConfig.URI = "mongodb://localhost:27017/?serverSelectionTimeoutMS=250"
	config.DBConfig.User = ""
	t.Cleanup(func() { config.DBConfig.URI = "" })

	opts := ClientOptions()
	if assert.NotNil(t, opts.ServerSelectionTimeout) {
		assert.Equal(t, 250*time.Millisecond, *opts.ServerSelectionTimeout)
	}
	if assert.NotNil(t, opts.ConnectTimeout) {
		assert.Equal(t, connectTimeout, *opts.ConnectTimeout)
	}
}
