// Package config provides configuration management for specfinder.
//
// Config file locations (priority order):
//  1. $SPECFINDER_CONFIG
//  2. ./specfinder.yaml
//  3. ~/.config/specfinder/config.yaml
//  4. /etc/specfinder/config.yaml
//
// A missing config file is not an error: defaults are used, and a small
// set of environment variables (PORT, SPECFINDER_SEARCH_URL) override
// whatever the file says.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Dataset  DatasetConfig  `yaml:"dataset"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig controls the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig controls the search client side of the application.
type SearchConfig struct {
	// UpstreamURL is the origin of the specialist search endpoint. The
	// default points at this server's own API.
	UpstreamURL string `yaml:"upstream_url"`

	// Limit caps how many results a search returns.
	Limit int `yaml:"limit"`

	// FallbackPath optionally names a YAML dataset to use as the
	// fallback list instead of the built-in examples.
	FallbackPath string `yaml:"fallback_path"`
}

// DatasetConfig names the seed dataset loaded into an empty store.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned string is the path the config was loaded from, empty when
// defaults were used. Environment overrides are applied in either case.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvironment()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvironment()

	return &cfg, path, nil
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./specfinder.db"
	}
	if c.Search.UpstreamURL == "" {
		c.Search.UpstreamURL = "http://localhost:8080"
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 50
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "./data/specialists.yaml"
	}
}

// applyEnvironment applies environment variable overrides.
// SPECFINDER_ADDR wins over PORT when both are set.
func (c *Config) applyEnvironment() {
	if u := os.Getenv("SPECFINDER_SEARCH_URL"); u != "" {
		c.Search.UpstreamURL = u
	}
	if p := os.Getenv("PORT"); p != "" {
		if _, err := strconv.Atoi(p); err == nil {
			c.Server.Addr = ":" + p
		}
	}
	if addr := os.Getenv("SPECFINDER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
}
