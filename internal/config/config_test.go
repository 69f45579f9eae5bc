package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7870", cfg.Server.Addr)
	assert.Equal(t, "docker", cfg.Runtime.Backend)
	assert.Equal(t, "/var/run/docker.sock", cfg.Runtime.DockerHost)
	assert.Equal(t, "3s", cfg.Stats.Interval)
	assert.Equal(t, 60, cfg.Stats.MaxPoints)
	assert.Equal(t, 20, cfg.Stats.RetentionCycles)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())

	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, interval)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HB_SERVER_ADDR", "0.0.0.0:9000")
	t.Setenv("HB_RUNTIME_BACKEND", "host")
	t.Setenv("HB_STATS_INTERVAL", "10s")
	t.Setenv("HB_STATS_MAX_POINTS", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "host", cfg.Runtime.Backend)
	assert.Equal(t, "10s", cfg.Stats.Interval)
	assert.Equal(t, 120, cfg.Stats.MaxPoints)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  addr: "127.0.0.1:7777"
runtime:
  backend: host
stats:
  interval: 5s
  max_points: 30
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7777", cfg.Server.Addr)
	assert.Equal(t, "host", cfg.Runtime.Backend)
	assert.Equal(t, "5s", cfg.Stats.Interval)
	assert.Equal(t, 30, cfg.Stats.MaxPoints)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset fields keep their defaults
	assert.Equal(t, 20, cfg.Stats.RetentionCycles)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"unknown backend", func(c *Config) { c.Runtime.Backend = "podman" }},
		{"bad interval", func(c *Config) { c.Stats.Interval = "soon" }},
		{"negative interval", func(c *Config) { c.Stats.Interval = "-3s" }},
		{"zero max points", func(c *Config) { c.Stats.MaxPoints = 0 }},
		{"zero retention", func(c *Config) { c.Stats.RetentionCycles = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
