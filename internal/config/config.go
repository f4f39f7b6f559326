package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port     string         `yaml:"port" validate:"required"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Sessions SessionsConfig `yaml:"sessions"`
	Log      LogConfig      `yaml:"log"`
}

// StorageConfig selects and configures the location store
type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	DBPath      string `yaml:"db_path" validate:"required_if=Driver sqlite"`
	PostgresURL string `yaml:"postgres_url" validate:"required_if=Driver postgres"`
}

// RedisConfig configures the optional session cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl" validate:"gte=0"`
}

// SessionsConfig holds the session-size policy shared by listing and pruning
type SessionsConfig struct {
	MinRecords     int  `yaml:"min_records" validate:"gte=1"`
	HideIncomplete bool `yaml:"hide_incomplete"`
	PruneRateLimit int  `yaml:"prune_rate_limit" validate:"gte=1"` // prune requests per minute per client
}

// LogConfig configures logrus
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port: ":8080",
		Storage: StorageConfig{
			Driver: "sqlite",
			DBPath: "./data/tracks/locations.db",
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		Sessions: SessionsConfig{
			MinRecords:     10,
			HideIncomplete: true,
			PruneRateLimit: 6,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 加载配置: defaults, then the YAML file (path argument or CONFIG_FILE), then env vars
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if url := os.Getenv("POSTGRES_URL"); url != "" {
		cfg.Storage.PostgresURL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		cfg.Redis.TTL = d
	}
	if v := os.Getenv("MIN_SESSION_RECORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MIN_SESSION_RECORDS: %w", err)
		}
		cfg.Sessions.MinRecords = n
	}
	if v := os.Getenv("HIDE_INCOMPLETE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HIDE_INCOMPLETE: %w", err)
		}
		cfg.Sessions.HideIncomplete = b
	}
	if v := os.Getenv("PRUNE_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PRUNE_RATE_LIMIT: %w", err)
		}
		cfg.Sessions.PruneRateLimit = n
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	return nil
}
