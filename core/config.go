package core

import (
	"fmt"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openfinance.dev"

const (
	defaultRequestTimeout   = 30 * time.Second
	defaultRetryMaxAttempts = 3
	defaultRetryDelay       = 60 * time.Second
)

type RetryConfig struct {
	MaxAttempts  int           `koanf:"max_attempts" mapstructure:"max_attempts"`
	DefaultDelay time.Duration `koanf:"default_delay" mapstructure:"default_delay"`
}

type Config struct {
	ClientID     string `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret string `koanf:"client_secret" mapstructure:"client_secret"`
	BaseURL      string `koanf:"base_url" mapstructure:"base_url"`
	// NonExpiringToken requests a token without an exp claim during the
	// credential exchange and caches it for the lifetime of the client.
	NonExpiringToken bool          `koanf:"non_expiring_token" mapstructure:"non_expiring_token"`
	RequestTimeout   time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	Retry            RetryConfig   `koanf:"retry" mapstructure:"retry"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		Retry: RetryConfig{
			MaxAttempts:  defaultRetryMaxAttempts,
			DefaultDelay: defaultRetryDelay,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("core: missing authorization for API communication")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("core: base_url is required")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("core: retry.max_attempts must be at least 1")
	}
	return nil
}

// Normalize fills zero-valued optional fields with their defaults and trims
// the credential and URL fields. Validate still decides whether the result
// is usable.
func (c Config) Normalize() Config {
	defaults := DefaultConfig()
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = defaults.Retry.MaxAttempts
	}
	if c.Retry.DefaultDelay <= 0 {
		c.Retry.DefaultDelay = defaults.Retry.DefaultDelay
	}
	return c
}
