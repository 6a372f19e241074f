package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hwidgate/internal/flagx"
	"github.com/dmitrijs2005/hwidgate/internal/timex"
)

// JsonConfig is a DTO used only for reading JSON configuration files.
// Durations use timex.Duration, so both "24h" and integer nanoseconds work.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	PublicURL             string         `json:"public_url"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LogLevel              string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config. Empty values
// in the file keep the current setting.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.PublicURL != "" {
		cfg.PublicURL = jc.PublicURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
