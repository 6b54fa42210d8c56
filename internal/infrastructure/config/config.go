package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string        `env:"PORT,      default=8080"`
	Env      string        `env:"ENV,       default=development"`
	LogLevel string        `env:"LOG_LEVEL, default=info"`
	BaseURL  string        `env:"BASE_URL,  default=http://localhost:8080"`
	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Mail     MailConfig
	Images   ImageStoreConfig
}

// JWTConfig holds the process-wide signing key and credential lifetime. The
// key is injected configuration so it can be swapped without a code change.
type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET, required"`
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	APIKey  string `env:"MAILGUN_API_KEY"`
	Domain  string `env:"MAILGUN_DOMAIN"`
	From    string `env:"MAIL_FROM, default=no-reply@localhost"`
	Workers int    `env:"MAIL_WORKERS, default=4"`
}

type ImageStoreConfig struct {
	BaseURL string        `env:"IMAGE_STORE_URL, default=http://localhost:9090"`
	Timeout time.Duration `env:"IMAGE_STORE_TIMEOUT, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
