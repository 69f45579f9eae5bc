package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the daemon configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Runtime    RuntimeConfig    `yaml:"runtime"`
	Stats      StatsConfig      `yaml:"stats"`
	RateLimits RateLimitsConfig `yaml:"rate_limits"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RuntimeConfig selects and configures the process-management backend
type RuntimeConfig struct {
	// Backend is "docker" or "host"
	Backend string `yaml:"backend"`

	// DockerHost is the Engine API Unix socket path
	DockerHost string `yaml:"docker_host"`

	// APIVersion is the Engine API version prefix, e.g. "v1.43"
	APIVersion string `yaml:"api_version"`
}

// StatsConfig tunes the streaming engine
type StatsConfig struct {
	// Interval is the polling cadence as a duration string, e.g. "3s"
	Interval string `yaml:"interval"`

	// MaxPoints caps every series' length
	MaxPoints int `yaml:"max_points"`

	// RetentionCycles is how many cycles a vanished container's series is kept
	RetentionCycles int `yaml:"retention_cycles"`

	// MaxConcurrentFetches bounds the per-cycle stats fan-out
	MaxConcurrentFetches int `yaml:"max_concurrent_fetches"`
}

// RateLimitsConfig represents the API rate limit configuration
type RateLimitsConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	FilePath string `yaml:"file_path"`
}

// Load loads the configuration from environment variables and defaults
func Load() (*Config, error) {
	return loadWithDefaults("")
}

// LoadFromFile loads configuration from a YAML file, with environment variable overrides
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithDefaults(configPath)
}

func loadWithDefaults(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("HB_SERVER_ADDR", "127.0.0.1:7870"),
		},
		Runtime: RuntimeConfig{
			Backend:    getEnv("HB_RUNTIME_BACKEND", "docker"),
			DockerHost: getEnv("HB_DOCKER_HOST", "/var/run/docker.sock"),
			APIVersion: getEnv("HB_DOCKER_API_VERSION", "v1.43"),
		},
		Stats: StatsConfig{
			Interval:             getEnv("HB_STATS_INTERVAL", "3s"),
			MaxPoints:            getEnvInt("HB_STATS_MAX_POINTS", 60),
			RetentionCycles:      getEnvInt("HB_STATS_RETENTION_CYCLES", 20),
			MaxConcurrentFetches: getEnvInt("HB_STATS_MAX_CONCURRENT_FETCHES", 8),
		},
		RateLimits: RateLimitsConfig{
			RequestsPerSecond: getEnvFloat("HB_RATE_LIMIT_RPS", 20),
			Burst:             getEnvInt("HB_RATE_LIMIT_BURST", 40),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "json"),
			FilePath: getEnv("LOG_FILE", ""),
		},
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	switch c.Runtime.Backend {
	case "docker", "host":
	default:
		return fmt.Errorf("runtime.backend must be \"docker\" or \"host\", got %q", c.Runtime.Backend)
	}

	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("stats.interval: %w", err)
	}

	if c.Stats.MaxPoints <= 0 {
		return fmt.Errorf("stats.max_points must be positive, got %d", c.Stats.MaxPoints)
	}

	if c.Stats.RetentionCycles <= 0 {
		return fmt.Errorf("stats.retention_cycles must be positive, got %d", c.Stats.RetentionCycles)
	}

	return nil
}

// Interval parses the configured polling cadence
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Stats.Interval)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", c.Stats.Interval)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
