package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings. Sensitive values can be overridden
// through environment variables after the file is loaded.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Backend struct {
		BaseURL    string `yaml:"base_url"`
		WSURL      string `yaml:"ws_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"backend"`

	Auth struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"auth"`

	UI struct {
		MarketRefreshSec int `yaml:"market_refresh_sec"`
		MarketPage       int `yaml:"market_page"`
		ChartDebounceMS  int `yaml:"chart_debounce_ms"`
	} `yaml:"ui"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("invalid backend base URL: %s", c.Backend.BaseURL)
	}
	if c.Backend.WSURL != "" && !strings.HasPrefix(c.Backend.WSURL, "ws://") && !strings.HasPrefix(c.Backend.WSURL, "wss://") {
		return fmt.Errorf("invalid backend WS URL: %s", c.Backend.WSURL)
	}
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 15
	}
	if c.UI.MarketRefreshSec <= 0 {
		return fmt.Errorf("market refresh interval must be positive")
	}
	if c.UI.MarketPage <= 0 {
		c.UI.MarketPage = 1
	}
	if c.UI.ChartDebounceMS <= 0 {
		c.UI.ChartDebounceMS = 500
	}
	return nil
}

// overrideWithEnv overwrites settings from environment variables when present.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("TRADEDESK_BASE_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	if url := os.Getenv("TRADEDESK_WS_URL"); url != "" {
		cfg.Backend.WSURL = url
	}
	if email := os.Getenv("TRADEDESK_EMAIL"); email != "" {
		cfg.Auth.Email = email
	}
	if password := os.Getenv("TRADEDESK_PASSWORD"); password != "" {
		cfg.Auth.Password = password
	}
}
