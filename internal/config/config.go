// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variable names recognized by FromEnv.
const (
	EnvBackendURL  = "RADAR_BACKEND_URL"
	EnvDevtoolsURL = "RADAR_DEVTOOLS_URL"
	EnvHistoryPath = "RADAR_HISTORY_PATH"
	EnvTimeout     = "RADAR_TIMEOUT_SECONDS"
	EnvUseBrowser  = "RADAR_USE_BROWSER"
	EnvVerbose     = "RADAR_VERBOSE"
)

// Config holds CLI configuration. Values are resolved in order: defaults,
// then a JSON config file, then environment variables, then CLI flags.
type Config struct {
	// BackendURL is the scoring backend's base URL.
	BackendURL string `json:"backend_url,omitempty" validate:"omitempty,url"`
	// DevtoolsURL is the DevTools endpoint of a running browser, used for
	// active-tab scans. Optional; absence disables the capability.
	DevtoolsURL string `json:"devtools_url,omitempty" validate:"omitempty,uri"`
	// HistoryPath is where the local scan history database lives.
	HistoryPath string `json:"history_path,omitempty"`
	// TimeoutSeconds bounds one scan attempt.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=300"`
	// UseBrowser renders pages in a headless browser before extraction.
	UseBrowser bool `json:"use_browser,omitempty"`
	// Verbose prints detailed debug information.
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	historyPath := "resume-radar-history.db"
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".resume-radar", "history.db")
	}
	return Config{
		BackendURL:     "http://localhost:8000",
		HistoryPath:    historyPath,
		TimeoutSeconds: 30,
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv overlays environment variables onto c.
func (c *Config) FromEnv() {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv(EnvDevtoolsURL); v != "" {
		c.DevtoolsURL = v
	}
	if v := os.Getenv(EnvHistoryPath); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv(EnvUseBrowser); v != "" {
		c.UseBrowser = v == "1" || v == "true"
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		c.Verbose = v == "1" || v == "true"
	}
}

// MergeWithDefaults fills empty fields from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.DevtoolsURL == "" {
		result.DevtoolsURL = defaults.DevtoolsURL
	}
	if result.HistoryPath == "" {
		result.HistoryPath = defaults.HistoryPath
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)
	return result
}

// Timeout returns the scan timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config error: field %q failed %q validation", f.Field(), f.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
