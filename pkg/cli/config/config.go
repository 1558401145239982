// Package config loads CLI configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs to reach the management service.
// Either a pre-acquired access token or a full app registration must be
// configured.
type Config struct {
	GraphBaseURL     string        `env:"APCTL_GRAPH_BASE_URL" envDefault:"https://graph.microsoft.com/beta"`
	AuthorityBaseURL string        `env:"APCTL_AUTHORITY_BASE_URL" envDefault:"https://login.microsoftonline.com"`
	TenantID         string        `env:"APCTL_TENANT_ID"`
	ClientID         string        `env:"APCTL_CLIENT_ID"`
	ClientSecret     string        `env:"APCTL_CLIENT_SECRET"`
	AccessToken      string        `env:"APCTL_ACCESS_TOKEN"`
	HTTPTimeout      time.Duration `env:"APCTL_HTTP_TIMEOUT" envDefault:"30s"`
	Verbose          bool          `env:"APCTL_VERBOSE" envDefault:"false"`
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate performs runtime validations on the loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.GraphBaseURL == "" {
		return fmt.Errorf("graph base URL must not be empty")
	}
	if cfg.AccessToken == "" {
		if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
			return fmt.Errorf("either APCTL_ACCESS_TOKEN or APCTL_TENANT_ID, APCTL_CLIENT_ID and APCTL_CLIENT_SECRET must be set")
		}
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive (got %s)", cfg.HTTPTimeout)
	}
	return nil
}

// UsesClientCredentials reports whether the configuration points at an app
// registration rather than a static token.
func (c *Config) UsesClientCredentials() bool {
	return c.AccessToken == ""
}
