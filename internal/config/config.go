package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brandbridge/bridgeboard/internal/util"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when no --config flag is given.
	DefaultConfigPath = "config.yaml"
	// DefaultAddr is the default HTTP listen address.
	DefaultAddr = ":8080"
	// DefaultDSN stores data in a local sqlite file.
	DefaultDSN = "data/bridgeboard.db"
	// DefaultJWTExpiry is the lifetime of issued user tokens.
	DefaultJWTExpiry = 7 * 24 * time.Hour
	// DefaultRedisChannel is the pub/sub channel for bridge notifications.
	DefaultRedisChannel = "bridgeboard:bridges"
)

// Environment variable overrides.
const (
	EnvAddr        = "BRIDGEBOARD_ADDR"
	EnvDSN         = "BRIDGEBOARD_DSN"
	EnvJWTSecret   = "BRIDGEBOARD_JWT_SECRET"
	EnvRedisURL    = "BRIDGEBOARD_REDIS_URL"
	EnvLogLevel    = "BRIDGEBOARD_LOG_LEVEL"
	envConfigPaths = "BRIDGEBOARD_CONFIG"
)

// AppConfig holds command line inputs.
type AppConfig struct {
	ConfigPath string
}

// Config is the on-disk YAML configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout"`
	WebDir          string        `yaml:"web-dir"`          // Optional built front-end to serve.
	SettingsRefresh time.Duration `yaml:"settings-refresh"` // How often DB settings are reloaded.
}

// DatabaseConfig configures the gorm connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JWTConfig configures user token signing.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// RedisConfig configures the notification publisher. An empty URL disables it.
type RedisConfig struct {
	URL     string `yaml:"url"`
	Channel string `yaml:"channel"`
}

// LogConfig configures logrus output.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "text" or "json".
	File       string `yaml:"file"`   // Optional rotated log file.
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAgeDays int    `yaml:"max-age-days"`
}

// ResolveConfigPath returns the config path from the flag, the environment, or the default.
func ResolveConfigPath(path string) string {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return filepath.Clean(trimmed)
	}
	if env := strings.TrimSpace(os.Getenv(envConfigPaths)); env != "" {
		return filepath.Clean(env)
	}
	return DefaultConfigPath
}

// Load reads the YAML file at path, applies defaults and environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config
	data, errRead := os.ReadFile(path)
	switch {
	case errRead == nil:
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	case errors.Is(errRead, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// LoadDatabaseDSN returns only the database DSN from the config at path.
func LoadDatabaseDSN(path string) (string, error) {
	cfg, err := Load(path)
	if err != nil {
		return "", err
	}
	return cfg.Database.DSN, nil
}

// Validate checks the settings needed to serve traffic.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret is required (or set %s)", EnvJWTSecret)
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("config: jwt.expiry must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDSN)); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisURL)); v != "" {
		cfg.Redis.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Server.SettingsRefresh <= 0 {
		cfg.Server.SettingsRefresh = time.Minute
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		cfg.Database.DSN = DefaultDSN
		if dir := util.DataDir(); dir != "" {
			cfg.Database.DSN = filepath.Join(dir, "bridgeboard.db")
		}
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = DefaultJWTExpiry
	}
	if strings.TrimSpace(cfg.Redis.Channel) == "" {
		cfg.Redis.Channel = DefaultRedisChannel
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 50
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 28
	}
}
