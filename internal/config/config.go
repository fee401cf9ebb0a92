// Package config resolves server settings from an optional YAML file and
// MUNSELL_MCP_* environment variables. Environment variables win over the
// file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig   = "MUNSELL_MCP_CONFIG"
	EnvLogLevel = "MUNSELL_MCP_LOG_LEVEL"
	EnvTable    = "MUNSELL_MCP_TABLE"
	EnvWorkers  = "MUNSELL_MCP_WORKERS"
)

// Log levels.
const (
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	TablePath string `yaml:"table"`   // External reference table; empty means built-in
	Workers   int    `yaml:"workers"` // Batch worker pool size; 1 disables fan-out
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel: LevelInfo,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == LevelDebug
}

// Load resolves the configuration: defaults, then the YAML file named by
// MUNSELL_MCP_CONFIG if set, then the remaining environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfig); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

// LoadFile reads settings from a YAML file on top of the defaults. The
// environment is not consulted.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	if file.LogLevel != "" {
		c.LogLevel = strings.ToLower(file.LogLevel)
	}
	if file.TablePath != "" {
		c.TablePath = file.TablePath
	}
	if file.Workers != 0 {
		c.Workers = file.Workers
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTable); v != "" {
		c.TablePath = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvWorkers, v)
		}
		c.Workers = n
	}
	return nil
}

func (c Config) validate() error {
	switch c.LogLevel {
	case LevelInfo, LevelDebug:
	default:
		return fmt.Errorf("unknown log level %q (want %s or %s)", c.LogLevel, LevelInfo, LevelDebug)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
