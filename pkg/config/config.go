package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/configor"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/thinkify/mongo-init/pkg/logger"
	"gopkg.in/go-playground/validator.v9"
)

type config struct {
	// DEV, dev, develop
	// PROD, prod, product, production
	IsDev string `env:"IS_DEV" default:"prod" validate:"required"`
}

// mongoDB config. Credentials are optional: without MONGODB_USER the URI's
// own userinfo (or none) is used.
type dbConfig struct {
	URI        string `env:"MONGODB_URI" default:"mongodb://localhost:27017" validate:"required"`
	User       string `env:"MONGODB_USER"`
	Password   string `env:"MONGODB_PASSWORD"`
	AuthSource string `env:"MONGODB_AUTH_SOURCE"`
	Database   string `env:"MONGODB_DATABASE" default:"thinkify" validate:"required"`
}

type bootstrapConfig struct {
	OpTimeout       string `env:"BOOTSTRAP_OP_TIMEOUT" default:"30s"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
}

var Config = config{}

var DBConfig = dbConfig{}

var BootstrapConfig = bootstrapConfig{}

// OpTimeout bounds every single collection or index creation call.
var OpTimeout = 30 * time.Second

// LoadAll loads and validates all configuration. Returns an error on failure.
// Every call starts from zero values: configor only fills blank fields.
func LoadAll() error {
	Config, DBConfig, BootstrapConfig = config{}, dbConfig{}, bootstrapConfig{}
	RedisConfig, ServerConfig = redisConfig{}, serverConfig{}

	validate := validator.New()

	envFilePathsCandidates := []string{
		".env",
		os.ExpandEnv("$HOME/.config/thinkify/.env"),
	}

	envFilePath := ""
	for _, envFilePathsCandidate := range envFilePathsCandidates {
		if _, err := os.Stat(envFilePathsCandidate); err == nil {
			envFilePath = envFilePathsCandidate
			break
		}
	}

	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Error("Error loading .env file. " + err.Error())
		}
	}

	if err := configor.Load(&Config); err != nil {
		return fmt.Errorf("config load error: %w", err)
	}
	if err := validate.Struct(Config); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	isDev, err := parseMode(Config.IsDev)
	if err != nil {
		return err
	}
	logger.Initialize(isDev)

	if err := configor.Load(&DBConfig); err != nil {
		return fmt.Errorf("db config load error: %w", err)
	}
	if err := validate.Struct(DBConfig); err != nil {
		return fmt.Errorf("db config validation error: %w", err)
	}
	if DBConfig.User != "" && DBConfig.Password == "" {
		return fmt.Errorf("db config validation error: MONGODB_PASSWORD is required when MONGODB_USER is set")
	}

	if err := loadBootstrap(); err != nil {
		return fmt.Errorf("bootstrap config error: %w", err)
	}

	if err := loadRedis(); err != nil {
		return fmt.Errorf("redis config error: %w", err)
	}

	if err := loadServer(); err != nil {
		return fmt.Errorf("server config error: %w", err)
	}

	return nil
}

// IsDevMode reports whether IS_DEV selects development mode.
func IsDevMode() bool {
	isDev, _ := parseMode(Config.IsDev)
	return isDev
}

func parseMode(v string) (bool, error) {
	switch v {
	case "DEV", "dev", "develop":
		return true, nil
	case "PROD", "prod", "product", "production":
		return false, nil
	}
	return false, fmt.Errorf("IS_DEV must be one of dev|develop|prod|production, got %q", v)
}

func loadBootstrap() error {
	if err := configor.Load(&BootstrapConfig); err != nil {
		return fmt.Errorf("bootstrap configor load: %w", err)
	}
	d, err := parsePositiveDuration("BOOTSTRAP_OP_TIMEOUT", BootstrapConfig.OpTimeout)
	if err != nil {
		return err
	}
	OpTimeout = d
	return nil
}

func parsePositiveDuration(name, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, v)
	}
	return d, nil
}
