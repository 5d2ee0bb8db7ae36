package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := LoadFrom(map[string]string{})
	s.Require().NoError(err)

	s.Equal(50051, cfg.Port)
	s.Equal(StoreMemory, cfg.Store)
	s.Equal([]string{"localhost:6379"}, cfg.RedisAddrs)
	s.Equal(24*time.Hour, cfg.SlotTTL)
	s.Equal(4, cfg.Concurrency)
	s.Equal(30*time.Second, cfg.ShutdownTimeout)
	s.Equal(slog.LevelInfo, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := LoadFrom(map[string]string{
		"OW_RANDO_PORT":        "6000",
		"OW_RANDO_STORE":       "redis",
		"OW_RANDO_REDIS_ADDRS": "a:1,b:2,c:3",
		"OW_RANDO_SLOT_TTL":    "90m",
		"OW_RANDO_LOG_LEVEL":   "debug",
	})
	s.Require().NoError(err)

	s.Equal(6000, cfg.Port)
	s.Equal(StoreRedis, cfg.Store)
	s.Equal([]string{"a:1", "b:2", "c:3"}, cfg.RedisAddrs)
	s.Equal(90*time.Minute, cfg.SlotTTL)
	s.Equal(slog.LevelDebug, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"OW_RANDO_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"OW_RANDO_PORT": "abc"}},
		{name: "unknown store", env: map[string]string{"OW_RANDO_STORE": "postgres"}},
		{name: "unknown log level", env: map[string]string{"OW_RANDO_LOG_LEVEL": "loud"}},
		{name: "negative ttl", env: map[string]string{"OW_RANDO_SLOT_TTL": "-1h"}},
		{name: "bad duration", env: map[string]string{"OW_RANDO_SLOT_TTL": "soon"}},
		{name: "negative concurrency", env: map[string]string{"OW_RANDO_CONCURRENCY": "-2"}},
		{
			name: "sqlite without path",
			env:  map[string]string{"OW_RANDO_STORE": "sqlite", "OW_RANDO_SQLITE_PATH": " "},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg, err := LoadFrom(tc.env)
			s.Require().Error(err)
			s.Nil(cfg)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}
