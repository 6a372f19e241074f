// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the hwidgate auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - PublicURL: externally visible base URL, used in checkout links.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: access token lifetime.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP      string        `env:"HWIDGATE_ADDR"`
	PublicURL             string        `env:"HWIDGATE_PUBLIC_URL"`
	DatabaseDSN           string        `env:"HWIDGATE_DATABASE_DSN"`
	SecretKey             string        `env:"HWIDGATE_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"HWIDGATE_TOKEN_TTL"`
	LogLevel              string        `env:"HWIDGATE_LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.PublicURL = "http://localhost:8080"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
}

// Load builds a Config by applying defaults, then an optional JSON file,
// then the environment, and finally command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
