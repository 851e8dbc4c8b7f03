package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Secrets may be supplied
// in the file but environment variables always win.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Kucoin struct {
			RestURL    string `yaml:"rest_url"`
			APIKey     string `yaml:"api_key"`
			SecretKey  string `yaml:"secret_key"`
			TimeoutSec int    `yaml:"timeout_sec"`
		} `yaml:"kucoin"`
	} `yaml:"api"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	u := c.API.Kucoin.RestURL
	if u == "" || (!strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://")) {
		return fmt.Errorf("invalid KuCoin REST URL: %s", u)
	}
	if c.API.Kucoin.APIKey == "" {
		return fmt.Errorf("KuCoin API key is required")
	}
	if c.API.Kucoin.SecretKey == "" {
		return fmt.Errorf("KuCoin secret key is required")
	}
	if c.API.Kucoin.TimeoutSec <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// overrideWithEnv lets environment variables take precedence over the file,
// so API keys never have to live on disk.
func overrideWithEnv(cfg *Config) {
	if cfg.API.Kucoin.SecretKey != "" {
		fmt.Println("⚠️  SECURITY WARNING: API secrets found in config file.")
		fmt.Println("   Recommendation: use KUCOIN_API_KEY / KUCOIN_SECRET_KEY instead.")
	}

	if key := os.Getenv("KUCOIN_API_KEY"); key != "" {
		cfg.API.Kucoin.APIKey = key
	}
	if secret := os.Getenv("KUCOIN_SECRET_KEY"); secret != "" {
		cfg.API.Kucoin.SecretKey = secret
	}
}
