package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/mcotp/internal/provider"
)

const appName = "mcotp"

type Config struct {
	CatalogDB string `koanf:"catalog_db"` // catalog database written by the scanner
	StateDB   string `koanf:"state_db"`   // saved queue between runs
	LogLevel  string `koanf:"log_level"`  // "debug", "info", "warn" or "error"

	Queue QueueConfig `koanf:"queue"`
}

// QueueConfig holds queue engine and front-end sizing.
type QueueConfig struct {
	BatchSize     int `koanf:"batch_size"`     // songs per shuffle batch (1-100, default: 10)
	BlockSize     int `koanf:"block_size"`     // songs per block party block (default: 5)
	BlockAttempts int `koanf:"block_attempts"` // bands tried for a full block (default: 5)
	Upcoming      int `koanf:"upcoming"`       // upcoming tracks shown (default: 5)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CatalogDB == "" {
		cfg.CatalogDB = filepath.Join(xdg.DataHome, appName, "catalog.db")
	}
	if cfg.StateDB == "" {
		cfg.StateDB = filepath.Join(xdg.DataHome, appName, "state.db")
	}
	cfg.CatalogDB = expandPath(cfg.CatalogDB)
	cfg.StateDB = expandPath(cfg.StateDB)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/mcotp/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
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

// GetQueueConfig returns the queue configuration with defaults applied.
func (c *Config) GetQueueConfig() QueueConfig {
	cfg := c.Queue

	if cfg.BatchSize <= 0 || cfg.BatchSize > 100 {
		cfg.BatchSize = 10
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = 5
	}
	if cfg.BlockAttempts <= 0 {
		cfg.BlockAttempts = 5
	}
	if cfg.Upcoming <= 0 {
		cfg.Upcoming = 5
	}

	return cfg
}

// BatchOptions returns the provider batch sizes from the queue configuration.
func (c *Config) BatchOptions() provider.Options {
	q := c.GetQueueConfig()
	return provider.Options{
		BatchSize:     q.BatchSize,
		BlockSize:     q.BlockSize,
		BlockAttempts: q.BlockAttempts,
	}
}
