// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the upstream client, session store and throttles via constructors.
  - Zero Hidden State: Nothing else in the gateway reads the environment.
*/
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tributestream gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream CMS
	UpstreamBaseURL    string        `env:"UPSTREAM_BASE_URL,required"`
	UpstreamHealthPath string        `env:"UPSTREAM_HEALTH_PATH" envDefault:"/_health"`
	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT"     envDefault:"15s"`

	// UpstreamJWTSecret enables local HS256 signature checks on session tokens.
	// Empty means only structure and expiry are inspected.
	UpstreamJWTSecret string `env:"UPSTREAM_JWT_SECRET"`

	// Session cookie
	SessionCookieName  string        `env:"SESSION_COOKIE_NAME"  envDefault:"jwt"`
	SessionCookieTTL   time.Duration `env:"SESSION_COOKIE_TTL"   envDefault:"168h"`
	SessionRememberTTL time.Duration `env:"SESSION_REMEMBER_TTL" envDefault:"720h"`
	SessionShortTTL    time.Duration `env:"SESSION_SHORT_TTL"    envDefault:"24h"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Key-Value Cache (Redis). Optional: enables distributed auth throttling.
	RedisURL string `env:"REDIS_URL"`

	// Auth attempt throttling
	AuthAttemptLimit  int           `env:"AUTH_ATTEMPT_LIMIT"  envDefault:"10"`
	AuthAttemptWindow time.Duration `env:"AUTH_ATTEMPT_WINDOW" envDefault:"15m"`

	// Relational Database (PostgreSQL). Optional: enables the audit trail.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the audit schema compiled into the binary with
	// the .sql files in this directory. Empty uses the embedded set.
	MigrationPath string `env:"MIGRATION_PATH"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	base, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return fmt.Errorf("config: UPSTREAM_BASE_URL must be an absolute http(s) URL, got %q", c.UpstreamBaseURL)
	}
	c.UpstreamBaseURL = strings.TrimRight(c.UpstreamBaseURL, "/")

	if c.AuthAttemptLimit <= 0 {
		return fmt.Errorf("config: AUTH_ATTEMPT_LIMIT must be positive, got %d", c.AuthAttemptLimit)
	}
	if c.AuthAttemptWindow <= 0 {
		return fmt.Errorf("config: AUTH_ATTEMPT_WINDOW must be positive, got %s", c.AuthAttemptWindow)
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("config: SESSION_COOKIE_NAME must not be empty")
	}

	origins := c.AllowedOrigins[:0]
	for _, origin := range c.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.AllowedOrigins = origins

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowsOrigin reports whether a browser origin may call the gateway with
// credentials. Development accepts any origin.
func (c *Config) AllowsOrigin(origin string) bool {
	if c.IsDevelopment() {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// UpstreamHealthURL resolves the readiness probe against the upstream origin.
// A base of https://cms.example.com/api yields https://cms.example.com/_health.
func (c *Config) UpstreamHealthURL() string {
	base, err := url.Parse(c.UpstreamBaseURL)
	if err != nil {
		return c.UpstreamBaseURL + c.UpstreamHealthPath
	}
	return base.Scheme + "://" + base.Host + c.UpstreamHealthPath
}
