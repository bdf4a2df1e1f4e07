package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 6900, cfg.Port)
	assert.Equal(t, "", cfg.SchemaSource)
	assert.False(t, cfg.RequireNonEmpty)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:6900", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.LoadTimeout())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WIDGETS_PORT", "7001")
	t.Setenv("WIDGETS_SCHEMA_SOURCE", "https://example.com/openapi.json")
	t.Setenv("WIDGETS_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, 7001, cfg.Port)
	assert.Equal(t, "https://example.com/openapi.json", cfg.SchemaSource)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("host: 0.0.0.0\nport: 8080\nschema_source: ./openapi.json\nrequire_non_empty: true\nlogging:\n  format: console\n")
	assert.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./openapi.json", cfg.SchemaSource)
	assert.True(t, cfg.RequireNonEmpty)
	assert.Equal(t, "console", cfg.Logging.Format)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"port out of range": "port: 99999\n",
		"zero port":         "port: 0\n",
		"bad timeout":       "load_timeout_ms: -5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}
