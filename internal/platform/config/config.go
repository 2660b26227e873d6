// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. A best-effort
'.env' file load (via godotenv) runs first so local development does not need
exported shell variables.

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, HTTP client) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures both binaries are Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schemas

// API holds all runtime configuration for the Trackline API server.
type API struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Shared secret for signing access tokens (HS256)
	JWTSecret string `env:"JWT_SECRET,required"`
}

// Dashboard holds all runtime configuration for the dashboard web application.
type Dashboard struct {

	// Server settings
	ServerPort  string `env:"DASHBOARD_PORT" envDefault:"8081"`
	Environment string `env:"ENVIRONMENT"    envDefault:"development"`
	Debug       bool   `env:"DEBUG"          envDefault:"false"`

	// APIBaseURL is the root of the Trackline API, e.g. "http://localhost:8080/api/v1".
	APIBaseURL string `env:"API_BASE_URL,required"`

	// CookieSecure marks the session cookie Secure (HTTPS-only deployments).
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`
}

// # Configuration Loading

// LoadAPI parses environment variables into an [API] struct.
func LoadAPI() (*API, error) {
	loadDotEnv()

	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadDashboard parses environment variables into a [Dashboard] struct.
func LoadDashboard() (*Dashboard, error) {
	loadDotEnv()

	cfg := &Dashboard{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads a local ".env" file when present. A missing file is the
// normal production case and is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// IsDevelopment reports whether the API server is running in development mode.
func (c *API) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the API server is running in production mode.
func (c *API) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the dashboard is running in development mode.
func (c *Dashboard) IsDevelopment() bool {
	return c.Environment == "development"
}
