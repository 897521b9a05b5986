package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/playstate/internal/session"
)

type Config struct {
	History HistoryConfig `koanf:"history"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	API     APIConfig     `koanf:"api"`
	Sentry  SentryConfig  `koanf:"sentry"`
}

// HistoryConfig holds the capacity of each history cache.
type HistoryConfig struct {
	SearchCapacity   int `koanf:"search_capacity"`   // default: 15
	PlayCapacity     int `koanf:"play_capacity"`     // default: 200
	FavoriteCapacity int `koanf:"favorite_capacity"` // default: 200
}

// StorageConfig holds snapshot persistence settings.
type StorageConfig struct {
	Path        string `koanf:"path"`          // sqlite file, empty means XDG data dir
	SaveDelayMS int    `koanf:"save_delay_ms"` // coalescing window for writes (default: 0)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level           string `koanf:"level"` // "debug", "info", "warning", "error"
	DisableSampling bool   `koanf:"disable_sampling"`
}

// APIConfig holds remote data source settings.
type APIConfig struct {
	Debug          bool   `koanf:"debug"`           // use the local proxy endpoints
	ProxyURL       string `koanf:"proxy_url"`       // base URL of the local proxy
	TimeoutSeconds int    `koanf:"timeout_seconds"` // default: 10
}

// SentryConfig holds error reporting settings. Reporting is off without a DSN.
type SentryConfig struct {
	DSN         string `koanf:"dsn"`
	Environment string `koanf:"environment"`
}

// Load reads the config files found in the default locations.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFrom reads a single config file.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
		return nil, err
	}
	return unmarshal(k)
}

func load(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.Path != "" {
		cfg.Storage.Path = expandPath(cfg.Storage.Path)
	}

	// Normalize proxy URL (remove trailing slash)
	cfg.API.ProxyURL = strings.TrimSuffix(cfg.API.ProxyURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/playstate/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "playstate", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetHistoryConfig returns the history configuration with defaults applied.
func (c *Config) GetHistoryConfig() HistoryConfig {
	cfg := c.History

	if cfg.SearchCapacity <= 0 {
		cfg.SearchCapacity = session.DefaultSearchCapacity
	}
	if cfg.PlayCapacity <= 0 {
		cfg.PlayCapacity = session.DefaultPlayCapacity
	}
	if cfg.FavoriteCapacity <= 0 {
		cfg.FavoriteCapacity = session.DefaultFavoriteCapacity
	}

	return cfg
}

// SaveDelay returns the write coalescing window.
func (c *Config) SaveDelay() time.Duration {
	if c.Storage.SaveDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.Storage.SaveDelayMS) * time.Millisecond
}

// GetAPIConfig returns the API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API

	if cfg.TimeoutSeconds <= 0 || cfg.TimeoutSeconds > 120 {
		cfg.TimeoutSeconds = 10
	}
	if cfg.Debug && cfg.ProxyURL == "" {
		cfg.ProxyURL = "http://localhost:8080"
	}

	return cfg
}

// Timeout returns the API request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HasSentryConfig returns true if error reporting is configured.
func (c *Config) HasSentryConfig() bool {
	return c.Sentry.DSN != ""
}
