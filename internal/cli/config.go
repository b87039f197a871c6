package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in config.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the optional on-disk configuration, read from
// $XDG_CONFIG_HOME/pagebinder/config.toml. Flags override config values;
// config overrides built-in defaults.
type Config struct {
	Page     PageConfig     `toml:"page"`
	Download DownloadConfig `toml:"download"`
	Cache    CacheConfig    `toml:"cache"`
}

// PageConfig selects the default page geometry for assembled PDFs.
type PageConfig struct {
	Size        string `toml:"size"`
	Orientation string `toml:"orientation"`
}

// DownloadConfig tunes the HTTP download path.
type DownloadConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	CacheTTLHours  int `toml:"cache_ttl_hours"`
}

// CacheConfig selects the cache backend for downloads.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
}

// DefaultConfig returns the built-in defaults: A4 portrait pages, 30s
// download timeout, 24h cache TTL, file-backed cache.
func DefaultConfig() Config {
	return Config{
		Page:     PageConfig{Size: "A4", Orientation: "P"},
		Download: DownloadConfig{TimeoutSeconds: 30, CacheTTLHours: 24},
		Cache:    CacheConfig{Backend: CacheBackendFile, RedisAddr: "localhost:6379"},
	}
}

// LoadConfig reads the config file, filling unset fields from defaults.
// A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/pagebinder/config.toml).
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
