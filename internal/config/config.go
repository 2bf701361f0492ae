// Package config loads client settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL  string `mapstructure:"API_BASE_URL"`
	APIUsername string `mapstructure:"API_USERNAME"`
	APIPassword string `mapstructure:"API_PASSWORD"`
	HTTPTimeout int    `mapstructure:"HTTP_TIMEOUT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	StubPort    string `mapstructure:"STUB_PORT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults match the local development stub.
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_USERNAME", "medilabo")
	v.SetDefault("API_PASSWORD", "medilabo123")
	v.SetDefault("HTTP_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STUB_PORT", "8080")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("API_USERNAME")
	v.BindEnv("API_PASSWORD")
	v.BindEnv("HTTP_TIMEOUT")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("STUB_PORT")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can actually reach a service.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.APIUsername == "" || c.APIPassword == "" {
		return fmt.Errorf("API_USERNAME and API_PASSWORD are required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %d", c.HTTPTimeout)
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
