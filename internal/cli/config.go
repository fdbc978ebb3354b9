package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cumulus/pkg/cloud"
)

// Cache backend names accepted in the config file.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Store backend names accepted in the config file.
const (
	storeBackendMemory = "memory"
	storeBackendMongo  = "mongo"
)

// Config is the user configuration loaded from ~/.config/cumulus/config.toml.
// Every field has a working default so the file is entirely optional.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Layout LayoutConfig `toml:"layout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"` // file (default), redis, none
	Dir     string      `toml:"dir"`     // overrides the XDG cache dir
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds redis connection settings for the cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the cloud store backend used by serve.
type StoreConfig struct {
	Backend string      `toml:"backend"` // memory (default), mongo
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig holds mongodb connection settings.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LayoutConfig holds default layout parameters applied before flags.
// Zero fields fall back to the engine defaults.
type LayoutConfig struct {
	MinFontSize  float64 `toml:"min_font_size"`
	MaxFontSize  float64 `toml:"max_font_size"`
	MaxAttempts  int     `toml:"max_attempts"`
	Padding      float64 `toml:"padding"`
	SizeExponent float64 `toml:"size_exponent"`
	Jitter       float64 `toml:"jitter"`
	Seed         uint64  `toml:"seed"`
}

// ToCloud converts the configured layout defaults to an engine config.
func (l LayoutConfig) ToCloud() cloud.Config {
	return cloud.Config{
		MinFontSize:  l.MinFontSize,
		MaxFontSize:  l.MaxFontSize,
		MaxAttempts:  l.MaxAttempts,
		Padding:      l.Padding,
		SizeExponent: l.SizeExponent,
		Jitter:       l.Jitter,
		Seed:         l.Seed,
	}
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: cacheBackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: storeBackendMemory,
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the config file if present. A missing file is not an
// error; a malformed one returns the defaults plus the parse error so the
// caller can warn without aborting.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return defaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG standard
// (~/.config/cumulus/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNone:
	case "":
		c.Cache.Backend = cacheBackendFile
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case storeBackendMemory, storeBackendMongo:
	case "":
		c.Store.Backend = storeBackendMemory
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	return nil
}
