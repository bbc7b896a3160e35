// Package config loads process configuration from the environment. Both
// binaries share it: the dashboard CLI reads Client and Redis, the reference
// API reads Server, Mongo and Redis.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends of the reference API.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Client ClientConfig
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type ClientConfig struct {
	APIBaseURL   string        `env:"ADMIN_API_URL,       default=http://localhost:8000/api/super_admin/"`
	Timeout      time.Duration `env:"ADMIN_API_TIMEOUT,   default=30s"`
	Profile      string        `env:"ADMIN_PROFILE,       default=default"`
	ServerPaging bool          `env:"ADMIN_SERVER_PAGING, default=false"`
	// ActivityLog records every notification in the MongoDB activity log.
	ActivityLog bool `env:"ADMIN_ACTIVITY_LOG, default=false"`
	// Token, when set, is used instead of the stored session.
	Token string `env:"ADMIN_TOKEN"`
}

type ServerConfig struct {
	Port      string        `env:"PORT,       default=8000"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	Store     string        `env:"STORE,      default=memory"`

	BootstrapUsername string `env:"BOOTSTRAP_USERNAME"`
	BootstrapPassword string `env:"BOOTSTRAP_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=admin_dashboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for main packages: it panics on error.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("config: ADMIN_API_TIMEOUT must be positive, got %s", c.Client.Timeout)
	}
	if c.Client.Profile == "" {
		return fmt.Errorf("config: ADMIN_PROFILE must not be empty")
	}
	switch c.Server.Store {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: STORE must be %q or %q, got %q", StoreMemory, StoreMongo, c.Server.Store)
	}
	return nil
}

// Development reports whether the process runs in the development
// environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// RequireServer checks the settings only the reference API needs.
func (c *Config) RequireServer() error {
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	return nil
}
