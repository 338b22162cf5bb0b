package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the client configuration, loaded from a TOML file.
type Config struct {
	BaseURL         string  `toml:"base_url"`
	PageSize        int     `toml:"page_size"`
	ScrollThreshold float64 `toml:"scroll_threshold"`
	StorePath       string  `toml:"store_path"`
	RequestTimeout  int     `toml:"request_timeout_seconds"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		PageSize:        10,
		ScrollThreshold: 500,
		StorePath:       "data/store",
		RequestTimeout:  15,
	}
}

// Load reads the config file at path, fills in defaults, and validates.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot run with.
func Validate(cfg Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.ScrollThreshold <= 0 {
		return fmt.Errorf("scroll_threshold must be positive, got %v", cfg.ScrollThreshold)
	}
	if cfg.RequestTimeout < 1 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", cfg.RequestTimeout)
	}
	return nil
}
