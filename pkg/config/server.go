package config

import (
	"fmt"
	"time"

	"github.com/jinzhu/configor"
)

type serverConfig struct {
	Addr            string `env:"SERVER_ADDR" default:":8080"`
	ShutdownTimeout string `env:"SHUTDOWN_TIMEOUT" default:"30s"`
	CertFile        string `env:"TLS_CERT_FILE"`
	KeyFile         string `env:"TLS_KEY_FILE"`
}

var ServerConfig = serverConfig{}

// ShutdownTimeout is the duration to wait for graceful shutdown of `serve`.
var ShutdownTimeout = 30 * time.Second

// loadServer loads the status server configuration. Called from LoadAll().
func loadServer() error {
	if err := configor.Load(&ServerConfig); err != nil {
		return fmt.Errorf("server configor load: %w", err)
	}
	d, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", ServerConfig.ShutdownTimeout)
	if err != nil {
		return err
	}
	ShutdownTimeout = d
	return nil
}

// TLSEnabled reports whether both TLS files are configured.
func TLSEnabled() bool {
	return ServerConfig.CertFile != "" && ServerConfig.KeyFile != ""
}
