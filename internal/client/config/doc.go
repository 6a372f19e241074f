// Package config loads runtime configuration for the hwidgate client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. HWIDGATE_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   auth API base URL (default https://velbots.shop)
//	-t int      request timeout in seconds, 0 disables it
//	-d string   local database path
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "database_path": "/tmp/hwidgate.db",
//	  "log_level": "debug"
//	}
package config
