package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultServerURL = "https://velbots.shop"
	DefaultLogLevel  = "info"
)

// Config holds runtime settings for the hwidgate client.
//
// Fields:
//   - ServerURL: base URL of the auth API.
//   - RequestTimeout: per-request deadline; zero means none.
//   - DatabasePath: SQLite file holding the install id and last username.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string        `env:"HWIDGATE_SERVER_URL"`
	RequestTimeout time.Duration `env:"HWIDGATE_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"HWIDGATE_DB_PATH"`
	LogLevel       string        `env:"HWIDGATE_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.RequestTimeout = 0
	c.DatabasePath = defaultDatabasePath()
	c.LogLevel = DefaultLogLevel
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hwidgate.db"
	}
	return filepath.Join(dir, "hwidgate", "client.db")
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then the environment, then flags. Later sources take precedence.
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
