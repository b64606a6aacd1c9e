// Package config loads and persists fitworks client configuration.
// Configuration lives in ~/.fitworks/config.json and can be overridden with
// FITWORKS_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all fitworks client configuration.
type Config struct {
	// Service endpoints for the analysis backend.
	Service ServiceConfig `json:"service"`

	// Auth provider settings.
	Auth AuthConfig `json:"auth"`

	// Logging controls the categorized debug logs.
	Logging LoggingConfig `json:"logging"`
}

// ServiceConfig configures the remote analysis service.
type ServiceConfig struct {
	// AnalyzeURL is the resume review endpoint.
	AnalyzeURL string `json:"analyze_url"`

	// MatchURL is the resume/job-description match endpoint.
	MatchURL string `json:"match_url"`

	// Timeout is the per-request timeout, e.g. "90s".
	Timeout string `json:"timeout"`

	// ResultCacheTTL controls how long an analysis result is reusable for
	// an identical (file, context) pair, e.g. "10m".
	ResultCacheTTL string `json:"result_cache_ttl"`
}

// AuthConfig configures the redirect-based auth provider.
type AuthConfig struct {
	// ProviderURL is the base URL of the auth provider.
	ProviderURL string `json:"provider_url"`

	// AnonKey is the provider's public API key sent with every auth call.
	AnonKey string `json:"anon_key"`

	// CallbackPort is the local port the interactive sign-in redirect
	// lands on, e.g. ":53682".
	CallbackPort string `json:"callback_port"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Level      string          `json:"level"` // debug, info, warn, error
	Categories map[string]bool `json:"categories,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			AnalyzeURL:     "https://fitforworks.app/api/analyze",
			MatchURL:       "https://fitforworks.app/api/match",
			Timeout:        "90s",
			ResultCacheTTL: "10m",
		},
		Auth: AuthConfig{
			ProviderURL:  "https://auth.fitforworks.app",
			CallbackPort: ":53682",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Dir returns the client's base directory (~/.fitworks), creating it if
// needed.
func Dir() (string, error) {
	if override := os.Getenv("FITWORKS_HOME"); override != "" {
		if err := os.MkdirAll(override, 0755); err != nil {
			return "", err
		}
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".fitworks")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads config.json from dir, falling back to defaults for anything
// missing, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the config back to dir/config.json.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// RequestTimeout parses the service timeout, defaulting to 90 seconds.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil || d <= 0 {
		return 90 * time.Second
	}
	return d
}

// CacheTTL parses the result cache TTL, defaulting to 10 minutes.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Service.ResultCacheTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITWORKS_ANALYZE_URL"); v != "" {
		cfg.Service.AnalyzeURL = v
	}
	if v := os.Getenv("FITWORKS_MATCH_URL"); v != "" {
		cfg.Service.MatchURL = v
	}
	if v := os.Getenv("FITWORKS_AUTH_URL"); v != "" {
		cfg.Auth.ProviderURL = v
	}
	if v := os.Getenv("FITWORKS_ANON_KEY"); v != "" {
		cfg.Auth.AnonKey = v
	}
	if v := os.Getenv("FITWORKS_DEBUG"); v == "1" || v == "true" {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
}
