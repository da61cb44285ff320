package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
api_base_url: https://backend.example.com/
redis_url: redis://localhost:6379/0
refresh_interval: 2m
allowed_origins:
  - kmab.example.com
  - "*.kmab.example.com"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "https://backend.example.com", cfg.APIBaseURL, "trailing slash trimmed")
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:5000")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "KMAB Tech", cfg.SiteName)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
api_base_url: https://file.example.com
`)
	t.Setenv("PORT", "9001")
	t.Setenv("API_BASE_URL", "https://env.example.com")
	t.Setenv("ALLOWED_ORIGINS", "a.com, b.com ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, []string{"a.com", "b.com"}, cfg.AllowedOrigins)
}

func TestMissingBaseURLFails(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestRelativeBaseURLFails(t *testing.T) {
	t.Setenv("API_BASE_URL", "/just/a/path")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
