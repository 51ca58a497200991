// Package config holds user preferences for the AgriMarket client.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds user preferences.
type Config struct {
	BackendURL     string        `json:"backend_url"`
	Theme          string        `json:"theme"` // "light" or "dark"
	RequestTimeout time.Duration `json:"request_timeout"`
	Verbose        bool          `json:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BackendURL:     "http://localhost:8000/api",
		Theme:          "light",
		RequestTimeout: 30 * time.Second,
	}
}

// Dir returns the directory where config, credentials and logs live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agrimarket"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk, applying defaults and then
// environment overrides (AGRIMARKET_BACKEND_URL, AGRIMARKET_THEME).
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := File()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return applyEnv(cfg), nil
	}
	if err != nil {
		return applyEnv(cfg), err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), err
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultConfig().BackendURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("AGRIMARKET_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("AGRIMARKET_THEME"); v != "" {
		cfg.Theme = v
	}
	return cfg
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
