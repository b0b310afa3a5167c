package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, defaultTimeoutSecs, cfg.API.TimeoutSeconds)
	assert.Equal(t, defaultWindowDays, cfg.Defaults.WindowDays)
	assert.Equal(t, defaultPerPage, cfg.Defaults.PerPage)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)
	assert.NotEmpty(t, cfg.Session.Path)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://staging.example.com/api
  timeout_seconds: 5
session:
  path: /tmp/walc-session.json
defaults:
  window_days: 30
  per_page: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.Equal(t, "/tmp/walc-session.json", cfg.Session.Path)
	assert.Equal(t, 30, cfg.Defaults.WindowDays)
	assert.Equal(t, 50, cfg.Defaults.PerPage)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://file.example.com/api
`)
	t.Setenv(EnvBaseURL, "https://env.example.com/api")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL, "environment wins over the file")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("WALC_AUDIT_DSN", "postgres://audit:secret@db/audit")
	path := writeConfig(t, `
audit:
  enabled: true
  dsn: ${WALC_AUDIT_DSN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://audit:secret@db/audit", cfg.Audit.DSN)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad url", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: 'not a url'\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("negative timeout", func(t *testing.T) {
		path := writeConfig(t, "api:\n  timeout_seconds: -1\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("audit enabled without dsn", func(t *testing.T) {
		path := writeConfig(t, "audit:\n  enabled: true\n")
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "audit.dsn")
	})

	t.Run("not yaml", func(t *testing.T) {
		path := writeConfig(t, "{{{")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
