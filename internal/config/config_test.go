package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	path := writeConfigFile(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Address)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)

	assert.Equal(t, "static", cfg.Proposals.Source)

	assert.Equal(t, "bankA", cfg.Banks.DefaultCode)
	assert.Equal(t, 1500*time.Millisecond, cfg.Banks.SubmitLatency)
	assert.InDelta(t, 0.3, cfg.Banks.AdvanceProbability, 1e-9)
}

func TestLoad_FullFile(t *testing.T) {
	viper.Reset()
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 8081
store:
  backend: redis
  redis:
    address: redis.internal:6379
    ttl: 1h
proposals:
  source: sqlite
  database:
    path: /tmp/proposals.db
banks:
  default_code: bankB
  submit_latency: 200ms
  advance_probability: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Store.Redis.Address)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "sqlite", cfg.Proposals.Source)
	assert.Equal(t, "/tmp/proposals.db", cfg.Proposals.Database.Path)
	assert.Equal(t, "bankB", cfg.Banks.DefaultCode)
	assert.Equal(t, 200*time.Millisecond, cfg.Banks.SubmitLatency)
	assert.InDelta(t, 0.5, cfg.Banks.AdvanceProbability, 1e-9)
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.env:6379")

	path := writeConfigFile(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.env:6379", cfg.Store.Redis.Address)
}

func TestLoad_MissingFile(t *testing.T) {
	viper.Reset()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:     StoreConfig{Backend: "memory"},
			Proposals: ProposalsConfig{Source: "static"},
			Banks:     BanksConfig{DefaultCode: "bankA", AdvanceProbability: 0.3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"valid memory static", func(cfg *Config) {}, false},
		{"valid redis backend", func(cfg *Config) {
			cfg.Store.Backend = "redis"
			cfg.Store.Redis.Address = "localhost:6379"
		}, false},
		{"unknown backend", func(cfg *Config) { cfg.Store.Backend = "etcd" }, true},
		{"redis without address", func(cfg *Config) { cfg.Store.Backend = "redis" }, true},
		{"unknown proposal source", func(cfg *Config) { cfg.Proposals.Source = "grpc" }, true},
		{"sqlite without path", func(cfg *Config) { cfg.Proposals.Source = "sqlite" }, true},
		{"missing default bank", func(cfg *Config) { cfg.Banks.DefaultCode = "" }, true},
		{"probability zero", func(cfg *Config) { cfg.Banks.AdvanceProbability = 0 }, true},
		{"probability above one", func(cfg *Config) { cfg.Banks.AdvanceProbability = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
