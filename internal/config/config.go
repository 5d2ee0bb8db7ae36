// Package config loads the server's process configuration from the
// environment.
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

// Store names a slot repository backend
type Store string

const (
	StoreMemory Store = "memory"
	StoreRedis  Store = "redis"
	StoreSQLite Store = "sqlite"
)

// Stores lists every supported backend
func Stores() []string {
	return []string{string(StoreMemory), string(StoreRedis), string(StoreSQLite)}
}

// Config is the server configuration. Flags on the server command override
// whatever the environment sets.
type Config struct {
	Port     int    `env:"OW_RANDO_PORT" envDefault:"50051"`
	LogLevel string `env:"OW_RANDO_LOG_LEVEL" envDefault:"info"`

	Store Store `env:"OW_RANDO_STORE" envDefault:"memory"`

	RedisAddrs    []string `env:"OW_RANDO_REDIS_ADDRS" envSeparator:"," envDefault:"localhost:6379"`
	RedisPassword string   `env:"OW_RANDO_REDIS_PASSWORD"`
	RedisDB       int      `env:"OW_RANDO_REDIS_DB" envDefault:"0"`
	RedisTLS      bool     `env:"OW_RANDO_REDIS_TLS"`

	SQLitePath string `env:"OW_RANDO_SQLITE_PATH" envDefault:"ow-rando.db"`

	SlotTTL     time.Duration `env:"OW_RANDO_SLOT_TTL" envDefault:"24h"`
	Concurrency int           `env:"OW_RANDO_CONCURRENCY" envDefault:"4"`

	ShutdownTimeout time.Duration `env:"OW_RANDO_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment.
// A nil map reads the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and the backend name
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("Port", c.Port, 1, 65535, vb)
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("Store", string(c.Store), Stores(), vb)

	switch c.Store {
	case StoreRedis:
		if len(c.RedisAddrs) == 0 {
			vb.RequiredField("RedisAddrs")
		}
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	if c.SlotTTL < 0 {
		vb.Field("SlotTTL", "must not be negative")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		vb.Field("ShutdownTimeout", "must be positive")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
