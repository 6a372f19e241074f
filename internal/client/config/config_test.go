package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HWIDGATE_SERVER_URL", "HWIDGATE_REQUEST_TIMEOUT", "HWIDGATE_DB_PATH", "HWIDGATE_LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DefaultServerURL, c.ServerURL)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.NotEmpty(t, c.DatabasePath)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://json:1",
		"request_timeout": "7s",
		"database_path": "/json/db",
		"log_level": "warn"
	}`), 0o600))

	t.Setenv("HWIDGATE_SERVER_URL", "http://env:2")
	t.Setenv("HWIDGATE_LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-config", path, "-l", "error", "status"})
	require.NoError(t, err)

	want := &Config{
		ServerURL:      "http://env:2",
		RequestTimeout: 7 * time.Second,
		DatabasePath:   "/json/db",
		LogLevel:       "error",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	clearEnv(t)
	t.Setenv("HWIDGATE_REQUEST_TIMEOUT", "3s")

	cfg, err := Load([]string{"-a", "http://flag:3", "-t", "15", "-d", "/flag/db"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/flag/db", cfg.DatabasePath)
}

func TestLoad_TimeoutFlagAbsentKeepsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HWIDGATE_REQUEST_TIMEOUT", "3s")

	cfg, err := Load([]string{"-a", "http://flag:3"})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "invalid json", args: []string{"-c", bad}},
		{name: "missing file", args: []string{"-c", filepath.Join(dir, "nope.json")}},
		{name: "bad timeout flag", args: []string{"-t", "abc"}},
		{name: "bad timeout env", env: map[string]string{"HWIDGATE_REQUEST_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			require.Error(t, err)
		})
	}
}
