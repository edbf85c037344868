// Package config provides configuration loading and structs for the
// tipsearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bdbt/tipsearch/internal/search"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool            `yaml:"debug"`
	Server  ServerConfig    `yaml:"server"`
	Storage StorageConfig   `yaml:"storage"`
	Search  SearchConfig    `yaml:"search"`
	Scoring *search.Weights `yaml:"scoring"`
	Watch   WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the database and catalog file paths.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	CatalogPath  string `yaml:"catalog_path"`
}

// SearchConfig holds query and suggestion settings.
type SearchConfig struct {
	DefaultLimit     int      `yaml:"default_limit"`
	MaxLimit         int      `yaml:"max_limit"`
	SuggestionLimit  int      `yaml:"suggestion_limit"`
	PopularSearches  []string `yaml:"popular_searches"`
	TrendingSearches []string `yaml:"trending_searches"`
	// AnalyticsTrending switches the trending list from the static
	// configuration to logged query frequency.
	AnalyticsTrending bool `yaml:"analytics_trending"`
	StopWords         []string `yaml:"stop_words"`
}

// WatchConfig holds catalog file watch settings.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled"`
	DebounceMS int   `yaml:"debounce_ms"`
}

// EnabledOrDefault returns whether catalog watching is on; defaults to true
// when a catalog path is configured.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Storage.CatalogPath != "" {
		cfg.Storage.CatalogPath = expandPath(cfg.Storage.CatalogPath, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
