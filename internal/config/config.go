package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Store     StoreConfig     `mapstructure:"store"`
	Proposals ProposalsConfig `mapstructure:"proposals"`
	Banks     BanksConfig     `mapstructure:"banks"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// StoreConfig selects and configures the flow state backend
type StoreConfig struct {
	Backend string      `mapstructure:"backend"` // memory or redis
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ProposalsConfig selects and configures the proposal lookup source
type ProposalsConfig struct {
	Source   string         `mapstructure:"source"` // static or sqlite
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds SQLite configuration for the proposal lookup
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// BanksConfig holds bank adapter configuration
type BanksConfig struct {
	DefaultCode        string        `mapstructure:"default_code"`
	SubmitLatency      time.Duration `mapstructure:"submit_latency"`
	AdvanceProbability float64       `mapstructure:"advance_probability"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")

	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.redis.address", "localhost:6379")
	viper.SetDefault("store.redis.db", 0)
	viper.SetDefault("store.redis.ttl", 24*time.Hour)

	viper.SetDefault("proposals.source", "static")
	viper.SetDefault("proposals.database.path", "data/proposals.db")
	viper.SetDefault("proposals.database.max_open_conns", 25)
	viper.SetDefault("proposals.database.max_idle_conns", 5)
	viper.SetDefault("proposals.database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("proposals.database.migrations_dir", "migrations")

	viper.SetDefault("banks.default_code", "bankA")
	viper.SetDefault("banks.submit_latency", 1500*time.Millisecond)
	viper.SetDefault("banks.advance_probability", 0.3)
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("store.redis.address", "REDIS_ADDRESS")
	viper.BindEnv("store.redis.password", "REDIS_PASSWORD")
	viper.BindEnv("proposals.source", "PROPOSALS_SOURCE")
	viper.BindEnv("proposals.database.path", "PROPOSALS_DB_PATH")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Store.Redis.Address == "" {
			return fmt.Errorf("store.redis.address is required for the redis backend")
		}
	default:
		return fmt.Errorf("store.backend must be memory or redis, got %q", c.Store.Backend)
	}

	switch c.Proposals.Source {
	case "static":
	case "sqlite":
		if c.Proposals.Database.Path == "" {
			return fmt.Errorf("proposals.database.path is required for the sqlite source")
		}
	default:
		return fmt.Errorf("proposals.source must be static or sqlite, got %q", c.Proposals.Source)
	}

	if c.Banks.DefaultCode == "" {
		return fmt.Errorf("banks.default_code is required")
	}
	if c.Banks.AdvanceProbability <= 0 || c.Banks.AdvanceProbability > 1 {
		return fmt.Errorf("banks.advance_probability must be in (0, 1], got %v", c.Banks.AdvanceProbability)
	}

	return nil
}
