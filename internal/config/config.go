// Package config loads and validates the admin tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL     = "https://walc.dotprogrammers.com/api"
	defaultTimeoutSecs = 30
	defaultWindowDays  = 14
	defaultPerPage     = 20

	// EnvBaseURL overrides api.base_url when set.
	EnvBaseURL = "WALC_API_URL"
)

// Config holds the complete tool configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Audit    AuditConfig    `yaml:"audit"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// APIConfig configures the backend API connection.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SessionConfig configures token persistence.
type SessionConfig struct {
	Path string `yaml:"path"`
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DSN           string `yaml:"dsn"`
	RetentionDays int    `yaml:"retention_days"`
}

// DefaultsConfig holds display defaults for commands that take ranges
// and pages.
type DefaultsConfig struct {
	WindowDays int `yaml:"window_days"`
	PerPage    int `yaml:"per_page"`
}

// Load reads the configuration from path. A missing file is not an
// error when the path was not explicitly given; defaults apply.
// Environment variables referenced as ${VAR} in the file are expanded,
// and WALC_API_URL overrides api.base_url last.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	// #nosec G304 -- path is from CLI args, controlled by the operator
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		data = []byte(expandEnvVars(string(data)))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file, defaults only.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyDefaults(cfg)

	if override := os.Getenv(EnvBaseURL); override != "" {
		cfg.API.BaseURL = override
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the standard config file location under the user
// configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "walc-admin.yaml"
	}
	return filepath.Join(dir, "walc-admin", "config.yaml")
}

// DefaultSessionPath returns the standard session file location.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "walc-session.json"
	}
	return filepath.Join(dir, "walc-admin", "session.json")
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = defaultTimeoutSecs
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = DefaultSessionPath()
	}
	if cfg.Audit.RetentionDays == 0 {
		cfg.Audit.RetentionDays = 90
	}
	if cfg.Defaults.WindowDays == 0 {
		cfg.Defaults.WindowDays = defaultWindowDays
	}
	if cfg.Defaults.PerPage == 0 {
		cfg.Defaults.PerPage = defaultPerPage
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url %q is not a valid URL", c.API.BaseURL))
	}
	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, "api.timeout_seconds must not be negative")
	}
	if c.Audit.Enabled && c.Audit.DSN == "" {
		errs = append(errs, "audit.dsn is required when audit is enabled")
	}
	if c.Defaults.WindowDays < 1 {
		errs = append(errs, "defaults.window_days must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
