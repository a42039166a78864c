package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	PostsURL           string        `mapstructure:"posts_url"`
	ExchangeBaseURL    string        `mapstructure:"exchange_base_url"`
	ExchangeAPIKey     string        `mapstructure:"exchange_api_key"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	HTTPAddr             string        `mapstructure:"http_addr"`
	FeedsFile            string        `mapstructure:"feeds_file"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	RelayIntervalSeconds int64         `mapstructure:"relay_interval"`
	RelayInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "dummy-feeds")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("posts_url", "https://jsonplaceholder.typicode.com/posts")
	v.SetDefault("exchange_base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("exchange_api_key", "")
	v.SetDefault("user_agent", "dummy-feeds/1.0")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("feeds_file", "./configs/feeds.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("relay_interval", 300) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/relay.db")
	v.SetDefault("storage_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives durations.
func (c *Config) finalize() error {
	c.PostsURL = strings.TrimSpace(c.PostsURL)
	c.ExchangeBaseURL = strings.TrimRight(strings.TrimSpace(c.ExchangeBaseURL), "/")
	c.ExchangeAPIKey = strings.TrimSpace(c.ExchangeAPIKey)

	if c.PostsURL == "" {
		return fmt.Errorf("posts_url is required")
	}
	if c.ExchangeBaseURL == "" {
		return fmt.Errorf("exchange_base_url is required")
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	if c.RelayIntervalSeconds <= 0 {
		return fmt.Errorf("invalid relay_interval (must be positive seconds)")
	}
	c.RelayInterval = time.Duration(c.RelayIntervalSeconds) * time.Second

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}

// Redacted returns a copy safe to log: the exchange API key is masked.
func (c Config) Redacted() Config {
	c.ExchangeAPIKey = MaskSecret(c.ExchangeAPIKey)
	return c
}

// MaskSecret keeps the last four characters of s.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
