package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.NotEmpty(t, cfg.HistoryPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"backend_url": "https://api.example.com",
		"timeout_seconds": 10,
		"verbose": true
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorContains(t, err, "config path is empty")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBackendURL, "http://envhost:9000")
	t.Setenv(EnvTimeout, "12")
	t.Setenv(EnvUseBrowser, "true")
	t.Setenv(EnvVerbose, "1")

	cfg := Default()
	cfg.FromEnv()

	assert.Equal(t, "http://envhost:9000", cfg.BackendURL)
	assert.Equal(t, 12, cfg.TimeoutSeconds)
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.Verbose)
}

func TestFromEnv_IgnoresUnparsableTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	cfg := Default()
	cfg.FromEnv()
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{BackendURL: "http://custom:1234"}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "http://custom:1234", merged.BackendURL)
	assert.Equal(t, 30, merged.TimeoutSeconds)
	assert.NotEmpty(t, merged.HistoryPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"bad backend URL", func(c *Config) { c.BackendURL = "not a url" }, true},
		{"timeout too large", func(c *Config) { c.TimeoutSeconds = 9000 }, true},
		{"devtools ws URL ok", func(c *Config) { c.DevtoolsURL = "ws://127.0.0.1:9222" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
