// Package config loads runtime configuration from a YAML file with
// environment-variable overrides. The backend base URL is the single
// required external value.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 3000
	defaultEnv             = "development"
	defaultRefreshInterval = 5 * time.Minute
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port            int           `yaml:"port"`
	Env             string        `yaml:"env"` // "development" | "production"
	APIBaseURL      string        `yaml:"api_base_url"`
	RedisURL        string        `yaml:"redis_url"`
	SessionSecret   string        `yaml:"session_secret"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	SiteName        string        `yaml:"site_name"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file (if present), applies env overrides and
// defaults, and validates. A missing file is fine when the env carries the
// required values.
func Load(configPath string) (*AppConfig, error) {
	_ = godotenv.Load()

	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &AppConfig{
		Port:            defaultPort,
		Env:             defaultEnv,
		RefreshInterval: defaultRefreshInterval,
		SiteName:        "KMAB Tech",
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url (or API_BASE_URL) is required")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api_base_url %q is not an absolute URL", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshInterval = d
		}
	}
}
